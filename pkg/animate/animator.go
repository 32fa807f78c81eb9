package animate

import (
	"context"
	"time"

	"github.com/taigrr/chart3d/pkg/series"
)

// Animator plays value transitions on one series of a chart. Every frame
// goes through Chart.SetValues, so the chart updates existing polygons in
// place instead of rebuilding the series.
type Animator struct {
	Frequency float64
	Damping   float64

	chart  *series.Chart
	series *series.Series
	fps    int
	tr     *Transition
}

// NewAnimator returns an animator for s stepping at fps frames per second.
func NewAnimator(c *series.Chart, s *series.Series, fps int) *Animator {
	return &Animator{
		Frequency: DefaultFrequency,
		Damping:   DefaultDamping,
		chart:     c,
		series:    s,
		fps:       max(1, fps),
	}
}

// To starts a transition from the series' current values to ys. A
// transition already in flight is retargeted.
func (a *Animator) To(ys []float64) error {
	_, cur, _ := a.series.Values()
	if len(ys) != len(cur) {
		return series.NewDataError(a.series.Name, "y", series.ErrLengthMismatch)
	}
	if a.tr == nil || a.tr.Done() {
		a.tr = NewTransition(a.fps, a.Frequency, a.Damping, cur, ys)
		return nil
	}
	a.tr.Retarget(ys)
	return nil
}

// Advance moves the transition on by one frame and hands the values to the
// chart without laying it out, so several animators can share one Layout
// per frame. It reports whether the transition has finished.
func (a *Animator) Advance() (bool, error) {
	if a.tr == nil {
		return true, nil
	}
	done := a.tr.Step()
	if err := a.chart.SetValues(a.series, a.tr.Values()); err != nil {
		return true, err
	}
	if done {
		series.Logger().Debug("transition settled", "series", a.series.Name)
	}
	return done, nil
}

// Step is Advance followed by a chart layout.
func (a *Animator) Step() (bool, error) {
	done, err := a.Advance()
	if err != nil {
		return done, err
	}
	a.chart.Layout()
	return done, nil
}

// Running reports whether a transition is in flight.
func (a *Animator) Running() bool {
	return a.tr != nil && !a.tr.Done()
}

// Run steps the transition on a ticker until it settles or ctx is done.
func (a *Animator) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			done, err := a.Step()
			if err != nil || done {
				return err
			}
		}
	}
}
