// Package render paints chart scenes onto PNG canvases and terminals.
//
// Scenes are drawn with the painter's algorithm: polygons are visited in
// the scene's draw order and faces turned away from the camera are culled.
// There is no depth buffer.
package render

import (
	"image/color"

	"github.com/taigrr/chart3d/pkg/math3d"
	"github.com/taigrr/chart3d/pkg/scene"
)

// Painter fills and outlines flat polygons on a 2D surface.
type Painter interface {
	FillPolygon(points []math3d.Vec2, c color.RGBA)
	StrokePolygon(points []math3d.Vec2, c color.RGBA, width float64)
}

// Draw paints every drawable front-facing polygon of s in draw order and
// returns how many were painted.
func Draw(s *scene.Scene, cam *Camera, p Painter, shading scene.Shading) int {
	drawn := 0
	for _, poly := range s.Polygons() {
		if !cam.FrontFacing(poly.Normal) {
			continue
		}
		pts := cam.ProjectRing(poly.Vertices)
		p.FillPolygon(pts, poly.ShadedFill(shading))
		if poly.StrokeThickness > 0 && poly.Stroke.A > 0 {
			p.StrokePolygon(pts, poly.Stroke, poly.StrokeThickness)
		}
		drawn++
	}
	return drawn
}
