package rotation

import (
	"context"
	"errors"
	"sync"
	"time"

	"vocabpop/internal/vocab"
	logx "vocabpop/pkg/logx"
)

// Trigger tells observers why an entry was shown.
type Trigger string

const (
	TriggerInterval Trigger = "interval"
	TriggerSignal   Trigger = "signal"
	TriggerForce    Trigger = "force"
)

// Sink displays one rendered payload to the user. Implementations never
// return an error; delivery is fire-and-forget from the scheduler's view.
type Sink interface {
	Show(title, body string)
}

// ShownFunc observes delivered notifications (e.g. for the history store).
// It runs on the scheduler goroutine and must be fast.
type ShownFunc func(e vocab.Entry, cursor int, trigger Trigger)

var (
	ErrNilSink   = errors.New("rotation: sink required")
	ErrNoCadence = errors.New("rotation: cadence required")
)

const defaultTick = time.Second

// Config controls the scheduler.
type Config struct {
	Cadence Cadence
	Tick    time.Duration // wait granularity; bounds interrupt latency. Default 1s.
	Once    bool          // show the entry at cursor 0 exactly once, then return
}

type Option func(*Scheduler)

// WithOnShown installs an observer for delivered notifications.
func WithOnShown(fn ShownFunc) Option {
	return func(s *Scheduler) { s.onShown = fn }
}

// Scheduler cycles through a vocabulary sequence on a cadence.
type Scheduler struct {
	cfg     Config
	log     logx.Logger
	sink    Sink
	onShown ShownFunc

	mu     sync.Mutex
	seq    *vocab.Sequence
	cursor int

	// showNow coalesces "show now" requests: a buffered-1 channel keeps
	// presence, not count, so rapid triggers collapse to one early show.
	showNow chan struct{}
	swaps   chan *vocab.Sequence
}

// New validates the inputs and builds a scheduler. The sequence must be
// non-empty; callers reject an empty vocabulary before getting here.
func New(cfg Config, seq *vocab.Sequence, sink Sink, log logx.Logger, opts ...Option) (*Scheduler, error) {
	if seq == nil || seq.Len() == 0 {
		return nil, vocab.ErrNoEntries
	}
	if sink == nil {
		return nil, ErrNilSink
	}
	if !cfg.Once && cfg.Cadence.IsZero() {
		return nil, ErrNoCadence
	}
	if cfg.Tick <= 0 {
		cfg.Tick = defaultTick
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	s := &Scheduler{
		cfg:     cfg,
		log:     log,
		sink:    sink,
		seq:     seq,
		showNow: make(chan struct{}, 1),
		swaps:   make(chan *vocab.Sequence, 1),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// ShowNow requests an immediate show. It never blocks and may be called
// from any goroutine; concurrent requests coalesce.
func (s *Scheduler) ShowNow() {
	select {
	case s.showNow <- struct{}{}:
	default:
	}
}

// Swap replaces the sequence between cycles and resets the cursor.
// Only the latest pending replacement is kept.
func (s *Scheduler) Swap(seq *vocab.Sequence) {
	if seq == nil || seq.Len() == 0 {
		return
	}
	select {
	case <-s.swaps:
	default:
	}
	select {
	case s.swaps <- seq:
	default:
	}
}

// Run drives the loop until ctx is canceled. Cancellation is cooperative:
// the in-flight cycle completes, then Run returns nil.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.cfg.Once {
		s.show(TriggerForce)
		return nil
	}

	s.log.Info("rotation started",
		logx.String("cadence", s.cfg.Cadence.String()),
		logx.Duration("tick", s.cfg.Tick),
		logx.Int("entries", s.seqLen()),
	)

	trigger := TriggerInterval
	for {
		if ctx.Err() != nil {
			s.log.Info("rotation stopped")
			return nil
		}
		s.show(trigger)

		switch s.wait(ctx) {
		case waitStopped:
			s.log.Info("rotation stopped")
			return nil
		case waitSignal:
			trigger = TriggerSignal
		default:
			trigger = TriggerInterval
		}
	}
}

type waitResult int

const (
	waitElapsed waitResult = iota
	waitSignal
	waitStopped
)

// wait sleeps until the next activation, in ticks. Each tick observes a
// pending show-now request (early show, wait abandoned) and cancellation.
// An early show restarts the cadence from that moment.
func (s *Scheduler) wait(ctx context.Context) waitResult {
	deadline := s.cfg.Cadence.next(time.Now())

	t := time.NewTicker(s.cfg.Tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return waitStopped
		case <-s.showNow:
			return waitSignal
		case seq := <-s.swaps:
			s.replace(seq)
		case now := <-t.C:
			if !now.Before(deadline) {
				return waitElapsed
			}
		}
	}
}

// show renders and delivers the entry under the cursor, then advances the
// cursor modulo the sequence length.
func (s *Scheduler) show(trigger Trigger) {
	s.mu.Lock()
	seq := s.seq
	cursor := s.cursor
	s.cursor = (cursor + 1) % seq.Len()
	s.mu.Unlock()

	e := seq.At(cursor)
	title, body := e.Render()
	s.sink.Show(title, body)

	s.log.Debug("entry shown",
		logx.String("word", e.Word),
		logx.Int("cursor", cursor),
		logx.String("trigger", string(trigger)),
	)
	if s.onShown != nil {
		s.onShown(e, cursor, trigger)
	}
}

func (s *Scheduler) replace(seq *vocab.Sequence) {
	s.mu.Lock()
	s.seq = seq
	s.cursor = 0
	s.mu.Unlock()
	s.log.Info("vocabulary replaced", logx.Int("entries", seq.Len()))
}

func (s *Scheduler) seqLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Len()
}
