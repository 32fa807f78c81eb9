package series

import (
	"image/color"

	"github.com/taigrr/chart3d/pkg/axis"
	"github.com/taigrr/chart3d/pkg/scene"
)

// State is where a series is in its layout cycle.
type State int

const (
	Idle State = iota
	Rebuilding
	Built
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rebuilding:
		return "rebuilding"
	case Built:
		return "built"
	}
	return "unknown"
}

// Style is the paint applied to every face of a series.
type Style struct {
	Fill            color.RGBA
	Stroke          color.RGBA
	StrokeThickness float64
	// Palette, when set, colors points (pie slices, columns) in turn
	// instead of Fill.
	Palette []color.RGBA
}

func (s Style) fillFor(i int) color.RGBA {
	if len(s.Palette) > 0 {
		return s.Palette[i%len(s.Palette)]
	}
	return s.Fill
}

// Series is one data series and its layout knobs. Configure the fields
// before AddSeries; afterwards change data through the Chart.
type Series struct {
	Name string
	Kind Kind
	Style
	Hidden bool

	// Gap fraction in [0, 1] between side-by-side slots of a category.
	Spacing float64
	// Extra shrink of each box within its slot, in [0, 1].
	SegmentSpacing float64
	// Stacked series with the same label share a stack.
	GroupingLabel string
	EmptyPoints   EmptyPoints

	// Line ribbon width, device units.
	Thickness float64
	// Scatter box edge, device units.
	MarkerSize float64

	// Pie and doughnut.
	StartAngle, EndAngle float64
	ExplodeIndex         int
	ExplodeAll           bool
	ExplodeRadius        float64
	// Doughnut hole as a fraction of the radius. Concentric circular
	// series share one hole: the largest InnerRadius among the visible
	// doughnuts. Pies ignore it.
	InnerRadius float64
	// Share of its concentric band the ring fills, (0, 1].
	RingCoefficient float64

	xs, ys, zs []float64
	id         int
	state      State
	segments   []*Segment
	// Geometry cache must be discarded on the next pass.
	rebuild bool
	// Stack input changed since the accumulator last saw it.
	stackDirty bool
}

// New returns a visible series of the given kind with default knobs.
func New(name string, kind Kind) *Series {
	return &Series{
		Name:            name,
		Kind:            kind,
		Style:           Style{Fill: color.RGBA{70, 130, 180, 255}},
		Spacing:         0.2,
		Thickness:       4,
		MarkerSize:      10,
		EndAngle:        360,
		ExplodeIndex:    -1,
		InnerRadius:     0.4,
		RingCoefficient: 1,
	}
}

// State returns the series' layout state.
func (s *Series) State() State {
	return s.state
}

// Segments returns the segments built by the last layout pass.
func (s *Series) Segments() []*Segment {
	return s.segments
}

// Values returns the series data as last set.
func (s *Series) Values() (xs, ys, zs []float64) {
	return s.xs, s.ys, s.zs
}

func (s *Series) visible() bool {
	return !s.Hidden
}

// Segment is the geometry of one data point, or of one unbroken run for
// line and area series.
type Segment struct {
	ID     scene.SegmentID
	Series *Series
	// Point index, or run index for line and area series.
	Index int

	XData, YData, ZData    []float64
	XRange, YRange, ZRange axis.Range

	// Cached polygons, in the order they were added to the scene.
	polys []*scene.Polygon
}

// FaceCount returns the number of cached polygons.
func (s *Segment) FaceCount() int {
	return len(s.polys)
}
