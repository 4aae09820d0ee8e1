package splash

import (
	"sort"
	"time"
)

// manualScheduler is a virtual-clock Scheduler. Advance runs everything that
// falls due, in time order, on the test goroutine.
type manualScheduler struct {
	now     time.Duration
	seq     int
	pending []scheduled
}

type scheduled struct {
	at  time.Duration
	seq int
	fn  func()
}

func (s *manualScheduler) Post(fn func()) { s.After(0, fn) }

func (s *manualScheduler) After(d time.Duration, fn func()) {
	s.seq++
	s.pending = append(s.pending, scheduled{at: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by d, running callbacks as they fall due.
func (s *manualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		sort.Slice(s.pending, func(i, j int) bool {
			if s.pending[i].at != s.pending[j].at {
				return s.pending[i].at < s.pending[j].at
			}
			return s.pending[i].seq < s.pending[j].seq
		})
		if len(s.pending) == 0 || s.pending[0].at > end {
			s.now = end
			return
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.now = next.at
		next.fn()
	}
}

// Flush runs everything queued, however far in the future.
func (s *manualScheduler) Flush() { s.Advance(time.Hour) }

type fakeWindow struct {
	bounds     Rect
	logo       *Image
	background Color
}

func (w *fakeWindow) Bounds() Rect               { return w.bounds }
func (w *fakeWindow) SetBackgroundColor(c Color) { w.background = c }
func (w *fakeWindow) Logo() (Image, bool) {
	if w.logo == nil {
		return Image{}, false
	}
	return *w.logo, true
}

type fakeSurface struct {
	layout    *Layout
	opacities []float64
	attached  bool
	detaches  int
}

func (s *fakeSurface) Attach(l Layout) {
	s.layout = &l
	s.attached = true
}

func (s *fakeSurface) SetOpacity(o float64) { s.opacities = append(s.opacities, o) }

func (s *fakeSurface) Detach() {
	s.attached = false
	s.detaches++
}

// fakeOverlay records calls and completes dismissal when told to.
type fakeOverlay struct {
	presents int
	dismiss  []func()
}

func (o *fakeOverlay) Present() { o.presents++ }

func (o *fakeOverlay) Dismiss(onComplete func()) { o.dismiss = append(o.dismiss, onComplete) }

func (o *fakeOverlay) complete() {
	for _, fn := range o.dismiss {
		fn()
	}
	o.dismiss = nil
}
