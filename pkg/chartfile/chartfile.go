// Package chartfile reads chart descriptions written in YAML and builds
// laid-out charts from them.
//
// A minimal file:
//
//	width: 600
//	height: 400
//	series:
//	  - name: sales
//	    kind: column
//	    y: [3, 5, 2]
package chartfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/chart3d/pkg/axis"
	"github.com/taigrr/chart3d/pkg/series"
)

// ErrNoSeries is returned by Build for a file without series.
var ErrNoSeries = errors.New("chart has no series")

// File is a chart description. Omitted view fields are nil and left for
// the caller to default; an explicit 0 is kept.
type File struct {
	Title      string   `yaml:"title,omitempty"`
	Width      *float64 `yaml:"width,omitempty"`
	Height     *float64 `yaml:"height,omitempty"`
	Depth      *float64 `yaml:"depth,omitempty"`
	Rotation   *float64 `yaml:"rotation,omitempty"`
	Tilt       *float64 `yaml:"tilt,omitempty"`
	Background *Color   `yaml:"background,omitempty"`

	// SideBySide places column and bar series of a category next to each
	// other instead of behind each other. Defaults to true.
	SideBySide *bool  `yaml:"sideBySide,omitempty"`
	XPadding   string `yaml:"xPadding,omitempty"` // "normal" or "none"
	Axes       Axes   `yaml:"axes,omitempty"`

	Series []Series `yaml:"series"`
}

// Axes holds explicit axis ranges. An omitted axis is fitted to the data.
type Axes struct {
	X *Axis `yaml:"x,omitempty"`
	Y *Axis `yaml:"y,omitempty"`
	Z *Axis `yaml:"z,omitempty"`
}

// Axis is one explicit axis.
type Axis struct {
	Min      float64  `yaml:"min"`
	Max      float64  `yaml:"max"`
	Log      bool     `yaml:"log,omitempty"`
	Base     float64  `yaml:"base,omitempty"`
	Origin   *float64 `yaml:"origin,omitempty"`
	Inversed bool     `yaml:"inversed,omitempty"`
}

// Series describes one data series. Pointer fields override the series
// defaults only when present. A null y value is an empty point.
type Series struct {
	Name    string     `yaml:"name"`
	Kind    string     `yaml:"kind"`
	X       []float64  `yaml:"x,omitempty"`
	Y       []*float64 `yaml:"y"`
	Z       []float64  `yaml:"z,omitempty"`
	Hidden  bool       `yaml:"hidden,omitempty"`
	Fill    *Color     `yaml:"fill,omitempty"`
	Stroke  *Color     `yaml:"stroke,omitempty"`
	Palette []Color    `yaml:"palette,omitempty"`

	StrokeWidth    *float64 `yaml:"strokeWidth,omitempty"`
	Spacing        *float64 `yaml:"spacing,omitempty"`
	SegmentSpacing *float64 `yaml:"segmentSpacing,omitempty"`
	Group          string   `yaml:"group,omitempty"`
	Empty          string   `yaml:"empty,omitempty"` // gap, zero, average, drop
	Thickness      *float64 `yaml:"thickness,omitempty"`
	MarkerSize     *float64 `yaml:"markerSize,omitempty"`

	StartAngle      *float64 `yaml:"startAngle,omitempty"`
	EndAngle        *float64 `yaml:"endAngle,omitempty"`
	ExplodeIndex    *int     `yaml:"explodeIndex,omitempty"`
	ExplodeAll      bool     `yaml:"explodeAll,omitempty"`
	ExplodeRadius   *float64 `yaml:"explodeRadius,omitempty"`
	InnerRadius     *float64 `yaml:"innerRadius,omitempty"`
	RingCoefficient *float64 `yaml:"ringCoefficient,omitempty"`
}

// Load decodes a chart description. Unknown keys are errors.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode chart: empty document")
		}
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return &f, nil
}

// LoadFile reads a chart description from path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}
	f, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Encode writes f as YAML.
func (f *File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return enc.Close()
}

// Build creates the chart described by f over a width x height viewport
// with the given depth and lays it out. The series are returned in file
// order.
func (f *File) Build(width, height, depth float64) (*series.Chart, []*series.Series, error) {
	if len(f.Series) == 0 {
		return nil, nil, ErrNoSeries
	}
	c := series.NewChart(axis.Rect{Width: width, Height: height}, depth)
	c.SetSideBySide(f.SideBySide == nil || *f.SideBySide)
	switch strings.ToLower(f.XPadding) {
	case "", "normal":
	case "none":
		c.SetXPadding(axis.PaddingNone)
	default:
		return nil, nil, fmt.Errorf("build chart: unknown x padding %q", f.XPadding)
	}
	c.SetAxes(f.Axes.X.resolve(), f.Axes.Y.resolve(), f.Axes.Z.resolve())

	out := make([]*series.Series, 0, len(f.Series))
	for i, fs := range f.Series {
		s, err := fs.build(i)
		if err != nil {
			return nil, nil, fmt.Errorf("build series %d: %w", i, err)
		}
		if err := c.AddSeries(s); err != nil {
			return nil, nil, fmt.Errorf("add series %q: %w", s.Name, err)
		}
		if err := c.SetData(s, fs.X, fs.values(), fs.Z); err != nil {
			return nil, nil, fmt.Errorf("set data: %w", err)
		}
		out = append(out, s)
	}
	c.Layout()
	return c, out, nil
}

func (a *Axis) resolve() *axis.Axis {
	if a == nil {
		return nil
	}
	var out *axis.Axis
	if a.Log {
		base := a.Base
		if base <= 0 {
			base = 10
		}
		out = axis.NewLogarithmic(a.Min, a.Max, base)
	} else {
		out = axis.NewLinear(a.Min, a.Max)
	}
	if a.Origin != nil {
		out.Origin = *a.Origin
	}
	out.IsInversed = a.Inversed
	return out
}

func (fs Series) values() []float64 {
	ys := make([]float64, len(fs.Y))
	for i, v := range fs.Y {
		if v == nil {
			ys[i] = math.NaN()
		} else {
			ys[i] = *v
		}
	}
	return ys
}

func (fs Series) build(index int) (*series.Series, error) {
	kind, err := series.ParseKind(fs.Kind)
	if err != nil {
		return nil, err
	}
	empty, err := parseEmpty(fs.Empty)
	if err != nil {
		return nil, err
	}
	name := fs.Name
	if name == "" {
		name = fmt.Sprintf("series %d", index+1)
	}
	s := series.New(name, kind)
	s.Hidden = fs.Hidden
	s.EmptyPoints = empty
	s.GroupingLabel = fs.Group
	s.ExplodeAll = fs.ExplodeAll
	if fs.Fill != nil {
		s.Fill = fs.Fill.ToRGBA()
	}
	if fs.Stroke != nil {
		s.Stroke = fs.Stroke.ToRGBA()
		s.StrokeThickness = 1
	}
	for _, c := range fs.Palette {
		s.Palette = append(s.Palette, c.ToRGBA())
	}
	set(&s.StrokeThickness, fs.StrokeWidth)
	set(&s.Spacing, fs.Spacing)
	set(&s.SegmentSpacing, fs.SegmentSpacing)
	set(&s.Thickness, fs.Thickness)
	set(&s.MarkerSize, fs.MarkerSize)
	set(&s.StartAngle, fs.StartAngle)
	set(&s.EndAngle, fs.EndAngle)
	set(&s.ExplodeIndex, fs.ExplodeIndex)
	set(&s.ExplodeRadius, fs.ExplodeRadius)
	set(&s.InnerRadius, fs.InnerRadius)
	set(&s.RingCoefficient, fs.RingCoefficient)
	return s, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func parseEmpty(name string) (series.EmptyPoints, error) {
	switch strings.ToLower(name) {
	case "", "gap":
		return series.Gap, nil
	case "zero":
		return series.Zero, nil
	case "average":
		return series.Average, nil
	case "drop":
		return series.Drop, nil
	}
	return 0, fmt.Errorf("unknown empty point mode %q", name)
}
