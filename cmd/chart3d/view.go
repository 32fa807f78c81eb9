package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/chart3d/pkg/animate"
	"github.com/taigrr/chart3d/pkg/math3d"
	"github.com/taigrr/chart3d/pkg/render"
	"github.com/taigrr/chart3d/pkg/scene"
	"github.com/taigrr/chart3d/pkg/series"
)

const viewHelp = `Controls:
  Mouse drag  - Rotate and tilt
  Scroll      - Zoom in/out
  A/D, ←/→    - Rotate
  W/S, ↑/↓    - Tilt
  Space       - Random spin
  G           - Replay the grow-in animation
  R           - Reset view
  +/-         - Zoom
  Esc, Q      - Quit`

func newViewCmd(cfg *Config, flags *viewFlags) *cobra.Command {
	var grow bool
	cmd := &cobra.Command{
		Use:   "view <chart.yaml>",
		Short: "View a chart in the terminal",
		Long:  "View a chart in the terminal with half-block pixels.\n\n" + viewHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, v, err := flags.loadChart(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			// The alternate screen owns stdout; keep library warnings quiet.
			series.SetLogger(slog.New(slog.DiscardHandler))
			return runView(cmd.Context(), c, v, max(1, cfg.FPS), grow)
		},
	}
	cmd.Flags().BoolVar(&grow, "grow", true, "animate the series growing from zero on start")
	return cmd
}

// viewer holds the interactive state of the view command.
type viewer struct {
	chart *series.Chart
	view  view
	fps   int

	rotation, tilt animate.Spin
	zoom           float64
	animators      []*animate.Animator
	targets        [][]float64

	fb            *render.Framebuffer
	mouseDown     bool
	lastX, lastY  int
	width, height int
}

func newViewer(c *series.Chart, v view, fps int) *viewer {
	vw := &viewer{chart: c, view: v, fps: fps}
	vw.reset()
	for _, s := range c.Series() {
		_, ys, _ := s.Values()
		vw.animators = append(vw.animators, animate.NewAnimator(c, s, fps))
		vw.targets = append(vw.targets, append([]float64(nil), ys...))
	}
	return vw
}

func (vw *viewer) reset() {
	vw.rotation = animate.NewSpin(vw.fps, vw.view.Rotation)
	vw.tilt = animate.NewSpin(vw.fps, vw.view.Tilt)
	vw.zoom = 1
}

// grow drops every series to zero and starts a transition back to its
// data. Empty points stay empty.
func (vw *viewer) grow() error {
	for i, s := range vw.chart.Series() {
		zeros := make([]float64, len(vw.targets[i]))
		for j, y := range vw.targets[i] {
			if math.IsNaN(y) {
				zeros[j] = y
			}
		}
		if err := vw.chart.SetValues(s, zeros); err != nil {
			return err
		}
		vw.animators[i] = animate.NewAnimator(vw.chart, s, vw.fps)
		if err := vw.animators[i].To(vw.targets[i]); err != nil {
			return err
		}
	}
	vw.chart.Layout()
	return nil
}

func (vw *viewer) resize(width, height int) {
	vw.width, vw.height = width, height
	vw.fb = render.NewFramebuffer(width, height*2)
}

// frame advances animations and draws one frame into the framebuffer.
func (vw *viewer) frame() error {
	for _, a := range vw.animators {
		if !a.Running() {
			continue
		}
		if _, err := a.Advance(); err != nil {
			return err
		}
	}
	vw.chart.Layout()
	vw.rotation.Update()
	vw.tilt.Update()
	vw.tilt.Position = max(-render.MaxTilt, min(render.MaxTilt, vw.tilt.Position))

	vw.fb.Clear(vw.view.Background)
	w, h := float64(vw.fb.Width), float64(vw.fb.Height)
	cam := render.NewCamera(vw.rotation.Position, vw.tilt.Position, vw.view.pivot())
	p := render.Fit(vw.fb, vw.chart.Scene(), cam, w, h, 1)
	center := math3d.V2(w/2, h/2)
	p.Offset = center.Sub(center.Sub(p.Offset).Scale(vw.zoom))
	p.Scale *= vw.zoom
	render.Draw(vw.chart.Scene(), cam, p, scene.DefaultShading)
	return nil
}

// handle applies one terminal event. It reports false when the viewer
// should quit.
func (vw *viewer) handle(term *uv.Terminal, ev uv.Event) bool {
	const impulse = 1.5
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		term.Erase()
		term.Resize(ev.Width, ev.Height)
		vw.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c", "q"):
			return false
		case ev.MatchString("a", "left"):
			vw.rotation.Impulse(-impulse)
		case ev.MatchString("d", "right"):
			vw.rotation.Impulse(impulse)
		case ev.MatchString("w", "up"):
			vw.tilt.Impulse(impulse)
		case ev.MatchString("s", "down"):
			vw.tilt.Impulse(-impulse)
		case ev.MatchString("space"):
			vw.rotation.Impulse((rand.Float64() - 0.5) * 20)
			vw.tilt.Impulse((rand.Float64() - 0.5) * 10)
		case ev.MatchString("g"):
			if err := vw.grow(); err != nil {
				slog.Debug("grow", "err", err)
			}
		case ev.MatchString("r"):
			vw.reset()
		case ev.MatchString("+", "="):
			vw.zoom = math.Min(8, vw.zoom*1.1)
		case ev.MatchString("-", "_"):
			vw.zoom = math.Max(0.2, vw.zoom/1.1)
		}

	case uv.MouseClickEvent:
		vw.mouseDown = true
		vw.lastX, vw.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		vw.mouseDown = false

	case uv.MouseMotionEvent:
		if vw.mouseDown {
			vw.rotation.Impulse(float64(ev.X-vw.lastX) * 0.5)
			vw.tilt.Impulse(float64(vw.lastY-ev.Y) * 0.5)
			vw.lastX, vw.lastY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			vw.zoom = math.Min(8, vw.zoom*1.1)
		case uv.MouseWheelDown:
			vw.zoom = math.Max(0.2, vw.zoom/1.1)
		}
	}
	return true
}

func runView(ctx context.Context, c *series.Chart, v view, fps int, grow bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Any-event mouse tracking in SGR mode.
	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h")
	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	vw := newViewer(c, v, fps)
	vw.resize(width, height)
	if grow {
		if err := vw.grow(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !vw.handle(term, ev) {
				return nil
			}
		case <-ticker.C:
			if err := vw.frame(); err != nil {
				return err
			}
			vw.fb.Draw(term, term.Bounds())
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
