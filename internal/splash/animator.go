package splash

import (
	"math"
	"time"
)

// Default dismissal timing.
const (
	DefaultDelay         = 50 * time.Millisecond
	DefaultDuration      = 220 * time.Millisecond
	DefaultFrameInterval = 16 * time.Millisecond
)

// Curve maps linear progress in [0,1] to eased progress in [0,1].
type Curve func(p float64) float64

// Linear is the identity curve.
func Linear(p float64) float64 { return p }

// CubicBezier returns the CSS-style timing curve through (0,0), (x1,y1),
// (x2,y2) and (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	bez := func(t, a, b float64) float64 {
		mt := 1 - t
		return 3*mt*mt*t*a + 3*mt*t*t*b + t*t*t
	}
	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}
		// x(t) is monotonic for x1,x2 in [0,1], so bisection converges.
		lo, hi := 0.0, 1.0
		for range 30 {
			mid := (lo + hi) / 2
			if bez(mid, x1, x2) < p {
				lo = mid
			} else {
				hi = mid
			}
		}
		return bez((lo+hi)/2, y1, y2)
	}
}

// EaseOut decelerates towards the end, matching UIKit's ease-out.
var EaseOut = CubicBezier(0, 0, 0.58, 1)

// Animator fades an overlay from fully opaque to transparent.
type Animator struct {
	Delay         time.Duration
	Duration      time.Duration
	FrameInterval time.Duration
	Curve         Curve
}

// NewAnimator returns an ease-out animator with the given timing.
func NewAnimator(delay, duration time.Duration) Animator {
	return Animator{
		Delay:         delay,
		Duration:      duration,
		FrameInterval: DefaultFrameInterval,
		Curve:         EaseOut,
	}
}

// Frames returns the number of frames the fade takes; at least one.
func (a Animator) Frames() int {
	fi := a.frameInterval()
	if a.Duration <= 0 {
		return 1
	}
	return int(math.Ceil(float64(a.Duration) / float64(fi)))
}

// Opacity returns the opacity shown at the given frame, 1-based. The last
// frame is always 0.
func (a Animator) Opacity(frame int) float64 {
	if frame >= a.Frames() || a.Duration <= 0 {
		return 0
	}
	p := float64(a.offset(frame)) / float64(a.Duration)
	curve := a.Curve
	if curve == nil {
		curve = Linear
	}
	return 1 - curve(p)
}

// offset is the time after Delay at which frame is shown. The last frame
// lands exactly at Duration.
func (a Animator) offset(frame int) time.Duration {
	return min(time.Duration(frame)*a.frameInterval(), max(a.Duration, 0))
}

// Animate schedules the fade on s and returns immediately. Frame k is shown
// offset(k) after Delay, so the fade spans Duration. apply receives each
// opacity value; done runs after the final frame. A started animation always
// runs to the end.
func (a Animator) Animate(s Scheduler, apply func(opacity float64), done func()) {
	n := a.Frames()
	var step func(frame int)
	step = func(frame int) {
		apply(a.Opacity(frame))
		if frame >= n {
			if done != nil {
				done()
			}
			return
		}
		s.After(a.offset(frame+1)-a.offset(frame), func() { step(frame + 1) })
	}
	s.After(a.Delay+a.offset(1), func() { step(1) })
}

func (a Animator) frameInterval() time.Duration {
	if a.FrameInterval <= 0 {
		return DefaultFrameInterval
	}
	return a.FrameInterval
}
