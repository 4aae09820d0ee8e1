package splash

import (
	"log/slog"
)

// Listen registers c as the handler of ch. Call it once per launch.
func (c *Controller) Listen(ch *MethodChannel) {
	ch.SetHandler(c.HandleCall)
}

// Launch is the startup sequence of the host shell: it presents an animated
// overlay over window and starts listening on opts.Channel (the splash
// channel by default) of messenger. It must run on the goroutine that owns sched.
func Launch(window Window, surface Surface, sched Scheduler, messenger Messenger, opts Options) *Controller {
	opts = opts.withDefaults()
	overlay := NewAnimatedOverlay(window, surface, sched, opts)

	c := NewController(overlay, opts.Logger.With(slog.String("channel", opts.Channel)))
	c.Present()
	c.Listen(NewMethodChannel(opts.Channel, messenger, JSONCodec{}))
	return c
}
