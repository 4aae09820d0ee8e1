package splash

import (
	"log/slog"

	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

// Channel and method names shared with the Flutter side.
const (
	ChannelName = "fortunelog/splash"
	MethodHide  = "hide"
)

// Handler answers one method call.
type Handler func(call types.MethodCall) types.Result

// Controller owns the splash overlay for one launch. It must only be used from
// the UI loop goroutine.
type Controller struct {
	overlay  types.Overlay
	state    types.OverlayState
	logger   *slog.Logger
	observer func(types.OverlayState)
}

// NewController returns a controller for overlay. A nil logger means
// slog.Default.
func NewController(overlay types.Overlay, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{overlay: overlay, logger: logger}
}

// OnStateChange registers fn to observe every transition.
func (c *Controller) OnStateChange(fn func(types.OverlayState)) {
	c.observer = fn
}

// State returns the current lifecycle state.
func (c *Controller) State() types.OverlayState { return c.state }

// Visible reports whether the overlay is presented and not yet dismissing.
func (c *Controller) Visible() bool { return c.state.Visible() }

// Present shows the overlay. Only the first call has an effect.
func (c *Controller) Present() {
	if c.state != types.OverlayPending || c.overlay == nil {
		return
	}
	c.overlay.Present()
	c.transition(types.OverlayPresented)
}

// HandleCall answers a splash channel call. "hide" starts the dismissal the
// first time and is a no-op afterwards; both reply with success. Every other
// method replies not-implemented and changes nothing.
func (c *Controller) HandleCall(call types.MethodCall) types.Result {
	if call.Method != MethodHide {
		c.logger.Debug("splash channel method not implemented", "method", call.Method)
		return types.NotImplemented()
	}
	c.hide()
	return types.Success(nil)
}

// Handler returns HandleCall as a channel handler.
func (c *Controller) Handler() Handler { return c.HandleCall }

func (c *Controller) hide() {
	overlay := c.overlay
	if overlay == nil {
		c.logger.Debug("splash already dismissed")
		return
	}
	c.overlay = nil
	if c.state == types.OverlayPending {
		// Nothing on screen yet; there is nothing to fade.
		c.transition(types.OverlayRemoved)
		return
	}
	c.transition(types.OverlayDismissing)
	overlay.Dismiss(func() { c.transition(types.OverlayRemoved) })
}

func (c *Controller) transition(to types.OverlayState) {
	c.logger.Debug("splash overlay state", "from", c.state, "to", to)
	c.state = to
	if c.observer != nil {
		c.observer(to)
	}
}
