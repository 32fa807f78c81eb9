package series

import (
	"fmt"
	"strings"
)

// Kind selects how a series is laid out and extruded.
type Kind int

const (
	Column Kind = iota
	Bar
	StackedColumn
	StackedColumn100
	StackedBar
	StackedBar100
	Line
	Area
	StackedArea
	StackedArea100
	Scatter
	Pie
	Doughnut
)

var kindNames = [...]string{
	Column:           "column",
	Bar:              "bar",
	StackedColumn:    "stacked-column",
	StackedColumn100: "stacked-column-100",
	StackedBar:       "stacked-bar",
	StackedBar100:    "stacked-bar-100",
	Line:             "line",
	Area:             "area",
	StackedArea:      "stacked-area",
	StackedArea100:   "stacked-area-100",
	Scatter:          "scatter",
	Pie:              "pie",
	Doughnut:         "doughnut",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name (case-insensitive).
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("parse kind %q: %w", name, ErrUnknownKind)
}

// Stacked reports whether values accumulate on earlier series.
func (k Kind) Stacked() bool {
	switch k {
	case StackedColumn, StackedColumn100, StackedBar, StackedBar100, StackedArea, StackedArea100:
		return true
	}
	return false
}

// Percent reports whether the kind is a 100% stacked variant.
func (k Kind) Percent() bool {
	return k == StackedColumn100 || k == StackedBar100 || k == StackedArea100
}

// Transposed reports whether categories run vertically.
func (k Kind) Transposed() bool {
	return k == Bar || k == StackedBar || k == StackedBar100
}

// Boxed reports whether each point is a box sharing category slots.
func (k Kind) Boxed() bool {
	switch k {
	case Column, Bar, StackedColumn, StackedColumn100, StackedBar, StackedBar100:
		return true
	}
	return false
}

// Circular reports whether the kind is drawn as sectors.
func (k Kind) Circular() bool {
	return k == Pie || k == Doughnut
}

// Run reports whether points are joined into one solid per unbroken run.
func (k Kind) Run() bool {
	return k == Line || k == Area || k == StackedArea || k == StackedArea100
}

// family groups kinds that may share a stack.
func (k Kind) family() string {
	switch {
	case k.Run():
		return "area"
	case k.Transposed():
		return "bar"
	default:
		return "column"
	}
}
