package splash

import (
	"log/slog"
)

// Window is the toolkit's root window.
type Window interface {
	// Bounds returns the full window frame.
	Bounds() Rect
	// SetBackgroundColor paints the window behind every view.
	SetBackgroundColor(Color)
	// Logo returns the bundled logo, or false when the resource is missing.
	Logo() (Image, bool)
}

// Surface is the toolkit view that renders a Layout above all other content.
type Surface interface {
	Attach(Layout)
	SetOpacity(opacity float64)
	Detach()
}

// Options tunes an AnimatedOverlay and the Launch sequence. Zero fields take
// the defaults.
type Options struct {
	Channel    string
	Background Color
	LogoSize   float64
	Animator   Animator
	Logger     *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Channel == "" {
		o.Channel = ChannelName
	}
	if o.Background == (Color{}) {
		o.Background = BrandGreen
	}
	if o.LogoSize <= 0 {
		o.LogoSize = DefaultLogoSize
	}
	if o.Animator.Duration <= 0 {
		o.Animator = NewAnimator(DefaultDelay, DefaultDuration)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// AnimatedOverlay is a types.Overlay drawn on a Surface and faded out by an
// Animator scheduled on the UI loop.
type AnimatedOverlay struct {
	window  Window
	surface Surface
	sched   Scheduler
	opts    Options
}

// NewAnimatedOverlay returns an overlay for window rendered through surface.
// Frames are scheduled on sched.
func NewAnimatedOverlay(window Window, surface Surface, sched Scheduler, opts Options) *AnimatedOverlay {
	return &AnimatedOverlay{window: window, surface: surface, sched: sched, opts: opts.withDefaults()}
}

// Present paints the window background and attaches the overlay. A missing
// logo resource leaves a solid color overlay.
func (o *AnimatedOverlay) Present() {
	var logo *Image
	if img, ok := o.window.Logo(); ok {
		logo = &img
	} else {
		o.opts.Logger.Warn("splash logo missing, presenting solid overlay")
	}
	layout := ComputeLayout(o.window.Bounds(), o.opts.Background, logo, o.opts.LogoSize)

	o.window.SetBackgroundColor(o.opts.Background)
	o.surface.Attach(layout)
	o.surface.SetOpacity(1)
}

// Dismiss fades the overlay out, detaches it and then calls onComplete.
func (o *AnimatedOverlay) Dismiss(onComplete func()) {
	o.opts.Animator.Animate(o.sched, o.surface.SetOpacity, func() {
		o.surface.Detach()
		if onComplete != nil {
			onComplete()
		}
	})
}
