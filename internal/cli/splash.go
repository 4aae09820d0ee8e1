package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortunelog/fortunelog-dev/internal/ctxlog"
	"github.com/fortunelog/fortunelog-dev/internal/splash"
	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

type splashFlags struct {
	width, height float64
	noLogo        bool
	calls         []string
	frames        bool
	timeout       time.Duration
}

func newSplashCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "splash",
		Short: "Work with the launch splash bridge",
	}

	var f splashFlags
	simulate := &cobra.Command{
		Use:   "simulate",
		Short: "Run the splash overlay against a terminal surface",
		Long: `Present the splash overlay on a simulated window, send the given calls on
the splash channel as the Flutter side would, and print every reply, state
transition and animation frame until the overlay is removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.simulateSplash(cmd, f)
		},
	}
	simulate.Flags().Float64Var(&f.width, "width", 390, "window width in logical units")
	simulate.Flags().Float64Var(&f.height, "height", 844, "window height in logical units")
	simulate.Flags().BoolVar(&f.noLogo, "no-logo", false, "simulate a missing logo resource")
	simulate.Flags().StringSliceVar(&f.calls, "call", []string{"ping", splash.MethodHide, splash.MethodHide}, "methods to send, in order")
	simulate.Flags().BoolVar(&f.frames, "frames", true, "print each opacity frame")
	simulate.Flags().DurationVar(&f.timeout, "timeout", 5*time.Second, "give up if the overlay is not removed in time")

	cmd.AddCommand(simulate)
	return cmd
}

func (a *app) simulateSplash(cmd *cobra.Command, f splashFlags) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()
	logger := ctxlog.FromContext(ctx)
	out := cmd.OutOrStdout()
	sc := a.cfg.Splash

	loop := splash.NewLoop()
	go loop.Run(ctx)
	router := splash.NewRouter(loop)

	win := &termWindow{out: out, bounds: splash.Rect{Width: f.width, Height: f.height}, hasLogo: !f.noLogo}
	surf := &termSurface{out: out, frames: f.frames}
	opts := splash.Options{
		Channel:  sc.Channel,
		LogoSize: sc.LogoSize,
		Animator: splash.NewAnimator(sc.Delay, sc.Duration),
		Logger:   logger,
	}

	removed := make(chan struct{})
	var ctrl *splash.Controller
	err := loop.Call(ctx, func() {
		ctrl = splash.Launch(win, surf, loop, router, opts)
		fmt.Fprintf(out, "state %s\n", ctrl.State())
		ctrl.OnStateChange(func(s types.OverlayState) {
			fmt.Fprintf(out, "state %s\n", s)
			if s == types.OverlayRemoved {
				close(removed)
			}
		})
	})
	if err != nil {
		return sysError(err)
	}

	flutter := splash.NewMethodChannel(sc.Channel, router, nil)
	replies := make(chan struct{}, len(f.calls))
	for _, method := range f.calls {
		err := flutter.Invoke(method, nil, func(r types.Result) {
			fmt.Fprintf(out, "call %s -> %s\n", method, r.Kind)
			replies <- struct{}{}
		})
		if err != nil {
			return sysError(err)
		}
	}
	for range f.calls {
		select {
		case <-replies:
		case <-ctx.Done():
			return sysError(fmt.Errorf("waiting for channel replies: %w", ctx.Err()))
		}
	}

	var state types.OverlayState
	if err := loop.Call(ctx, func() { state = ctrl.State() }); err != nil {
		return sysError(err)
	}
	if state == types.OverlayPresented {
		fmt.Fprintln(out, "overlay still presented: no hide received")
		return nil
	}

	select {
	case <-removed:
	case <-ctx.Done():
		return sysError(fmt.Errorf("waiting for overlay removal: %w", ctx.Err()))
	}
	// Let the final frame's writes finish before returning.
	return loop.Call(ctx, func() {})
}

// termWindow is a splash.Window that reports to a terminal.
type termWindow struct {
	out     io.Writer
	bounds  splash.Rect
	hasLogo bool
}

func (w *termWindow) Bounds() splash.Rect { return w.bounds }

func (w *termWindow) SetBackgroundColor(c splash.Color) {
	fmt.Fprintf(w.out, "window background %s\n", c.Hex())
}

func (w *termWindow) Logo() (splash.Image, bool) {
	if !w.hasLogo {
		return splash.Image{}, false
	}
	return splash.Image{Name: "SplashLogo"}, true
}

// termSurface is a splash.Surface that prints what a view would render.
type termSurface struct {
	out    io.Writer
	frames bool
}

func (s *termSurface) Attach(l splash.Layout) {
	if l.Logo == nil {
		fmt.Fprintf(s.out, "overlay attached %gx%g %s, no logo\n", l.Bounds.Width, l.Bounds.Height, l.Background.Hex())
		return
	}
	fr := l.Logo.Frame
	fmt.Fprintf(s.out, "overlay attached %gx%g %s, logo %s at (%g,%g) %gx%g\n",
		l.Bounds.Width, l.Bounds.Height, l.Background.Hex(), l.Logo.Image.Name, fr.X, fr.Y, fr.Width, fr.Height)
}

func (s *termSurface) SetOpacity(o float64) {
	if s.frames {
		fmt.Fprintf(s.out, "opacity %.2f\n", o)
	}
}

func (s *termSurface) Detach() {
	fmt.Fprintln(s.out, "overlay detached")
}
