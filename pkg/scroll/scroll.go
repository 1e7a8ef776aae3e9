package scroll

import (
	"sync"
	"time"
)

const (
	DefaultDuration    = 800 * time.Millisecond
	EaseInOutCubicName = "easeInOutCubic"
)

// Request asks the browser to smooth scroll a card into view.
type Request struct {
	Target   string        `json:"target"`
	Duration time.Duration `json:"-"`
	Millis   int64         `json:"duration"`
	Easing   string        `json:"easing"`
}

func NewRequest(target string) Request {
	return Request{
		Target:   target,
		Duration: DefaultDuration,
		Millis:   DefaultDuration.Milliseconds(),
		Easing:   EaseInOutCubicName,
	}
}

type Scroller interface {
	ScrollTo(r Request)
}

// Recorder keeps the latest request until the client takes it.
type Recorder struct {
	mu      sync.Mutex
	pending *Request
}

func (r *Recorder) ScrollTo(req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = &req
}

func (r *Recorder) Take() *Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := r.pending
	r.pending = nil
	return ret
}

func (r *Recorder) Peek() *Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// EaseInOutCubic is the easing of the card scroll: t elapsed, b start,
// c change and d total duration.
func EaseInOutCubic(t, b, c, d float64) float64 {
	t /= d / 2
	if t < 1 {
		return c/2*t*t*t + b
	}
	t -= 2
	return c/2*(t*t*t+2) + b
}
