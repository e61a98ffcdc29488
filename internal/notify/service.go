package notify

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	logx "vocabpop/pkg/logx"
)

const defaultHistorySize = 50

// Config controls the delivery wrapper.
type Config struct {
	Driver      string `json:"driver,omitempty"`       // "desktop" (default) or "console"
	RatePerMin  int    `json:"rate_per_min,omitempty"` // token bucket refill; 0 disables the limit
	HistorySize int    `json:"history_size,omitempty"` // bounded in-memory history
}

// Payload is one delivered (or dropped) notification.
type Payload struct {
	At      time.Time
	Title   string
	Body    string
	Dropped bool
}

// Service wraps a sink with a token-bucket rate limit so runaway triggers
// cannot flood the desktop, and keeps a bounded history of recent payloads.
//
// Service itself satisfies Sink and is safe for concurrent use.
type Service struct {
	sink    Sink
	log     logx.Logger
	limiter *rate.Limiter
	max     int

	mu      sync.Mutex
	history []Payload
}

func NewService(cfg Config, sink Sink, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	max := cfg.HistorySize
	if max <= 0 {
		max = defaultHistorySize
	}
	var limiter *rate.Limiter
	if cfg.RatePerMin > 0 {
		// Burst equals the per-minute budget so a signal right after an
		// interval show still goes through.
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RatePerMin)/60.0), cfg.RatePerMin)
	}
	return &Service{sink: sink, log: log, limiter: limiter, max: max}
}

func (s *Service) Show(title, body string) {
	p := Payload{At: time.Now(), Title: title, Body: body}
	if s.limiter != nil && !s.limiter.Allow() {
		p.Dropped = true
		s.append(p)
		s.log.Warn("notification dropped (rate limit)", logx.String("title", title))
		return
	}
	s.sink.Show(title, body)
	s.append(p)
}

// History returns a copy of the recent payloads, oldest first.
func (s *Service) History() []Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Payload, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Service) append(p Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, p)
	if len(s.history) > s.max {
		s.history = s.history[len(s.history)-s.max:]
	}
}
