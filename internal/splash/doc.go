// Package splash keeps a launch overlay on screen until the embedded UI
// framework reports its first frame over the "fortunelog/splash" method
// channel, then fades it out and removes it.
//
// The package is toolkit-agnostic. A toolkit supplies a Window and a Surface;
// AnimatedOverlay turns them into a types.Overlay, Controller owns the single
// overlay reference and answers channel calls, and Loop stands in for the UI
// thread that serializes channel deliveries and animation frames.
package splash
