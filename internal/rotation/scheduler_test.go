package rotation

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"

	"vocabpop/internal/vocab"
	logx "vocabpop/pkg/logx"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type payload struct {
	title string
	body  string
}

type captureSink struct {
	ch chan payload
}

func newCaptureSink() *captureSink {
	return &captureSink{ch: make(chan payload, 128)}
}

func (c *captureSink) Show(title, body string) {
	c.ch <- payload{title: title, body: body}
}

func (c *captureSink) next(t *testing.T, within time.Duration) payload {
	t.Helper()
	select {
	case p := <-c.ch:
		return p
	case <-time.After(within):
		t.Fatalf("no notification within %v", within)
		return payload{}
	}
}

func (c *captureSink) none(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case p := <-c.ch:
		t.Fatalf("unexpected notification %q", p.title)
	case <-time.After(within):
	}
}

func seqOf(t *testing.T, entries ...vocab.Entry) *vocab.Sequence {
	t.Helper()
	seq, err := vocab.NewSequence(entries, false, nil)
	if err != nil {
		t.Fatalf("NewSequence error: %v", err)
	}
	return seq
}

func run(t *testing.T, s *Scheduler) (cancel func(), done chan struct{}) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done = make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()
	return stop, done
}

func waitDone(t *testing.T, done chan struct{}, within time.Duration) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(within):
		t.Fatalf("scheduler did not stop within %v", within)
	}
}

func TestNewValidation(t *testing.T) {
	sink := newCaptureSink()
	seq := seqOf(t, vocab.Entry{Word: "一"})

	if _, err := New(Config{Cadence: Interval(time.Minute)}, nil, sink, logx.Nop()); err == nil {
		t.Fatal("expected error for nil sequence")
	}
	if _, err := New(Config{Cadence: Interval(time.Minute)}, seq, nil, logx.Nop()); err == nil {
		t.Fatal("expected error for nil sink")
	}
	if _, err := New(Config{}, seq, sink, logx.Nop()); err == nil {
		t.Fatal("expected error for missing cadence")
	}
	if _, err := New(Config{Once: true}, seq, sink, logx.Nop()); err != nil {
		t.Fatalf("once mode needs no cadence: %v", err)
	}
}

func TestRotationOrderAndWrap(t *testing.T) {
	sink := newCaptureSink()
	seq := seqOf(t,
		vocab.Entry{Word: "日", Reading: "hi"},
		vocab.Entry{Word: "猫", Reading: "neko", Meaning: "cat", Codes: "N5"},
	)
	cfg := Config{Cadence: Interval(5 * time.Millisecond), Tick: time.Millisecond}
	s, err := New(cfg, seq, sink, logx.Nop())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	cancel, done := run(t, s)

	first := sink.next(t, time.Second)
	if first.title != "日" || first.body != "hi" {
		t.Fatalf("first = %q/%q, want 日/hi", first.title, first.body)
	}
	second := sink.next(t, time.Second)
	if second.title != "猫" || second.body != "neko — cat (N5)" {
		t.Fatalf("second = %q/%q", second.title, second.body)
	}
	third := sink.next(t, time.Second)
	if third.title != "日" || third.body != "hi" {
		t.Fatalf("wrap = %q/%q, want 日/hi", third.title, third.body)
	}

	cancel()
	waitDone(t, done, time.Second)
}

func TestFullCoverageBeforeRepetition(t *testing.T) {
	sink := newCaptureSink()
	words := []string{"a", "b", "c", "d", "e"}
	entries := make([]vocab.Entry, len(words))
	for i, w := range words {
		entries[i] = vocab.Entry{Word: w}
	}
	cfg := Config{Cadence: Interval(time.Millisecond), Tick: time.Millisecond}
	s, err := New(cfg, seqOf(t, entries...), sink, logx.Nop())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	cancel, done := run(t, s)

	seen := map[string]int{}
	for i := 0; i < 2*len(words); i++ {
		p := sink.next(t, time.Second)
		if p.title != words[i%len(words)] {
			t.Fatalf("show %d = %q, want %q", i, p.title, words[i%len(words)])
		}
		seen[p.title]++
	}
	for _, w := range words {
		if seen[w] != 2 {
			t.Fatalf("word %q shown %d times, want 2", w, seen[w])
		}
	}

	cancel()
	waitDone(t, done, time.Second)
}

func TestSignalCoalescing(t *testing.T) {
	sink := newCaptureSink()
	var triggers []Trigger
	trigCh := make(chan Trigger, 16)

	cfg := Config{Cadence: Interval(time.Hour), Tick: time.Millisecond}
	s, err := New(cfg, seqOf(t, vocab.Entry{Word: "一"}, vocab.Entry{Word: "二"}), sink, logx.Nop(),
		WithOnShown(func(e vocab.Entry, cursor int, trigger Trigger) { trigCh <- trigger }),
	)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	// Two triggers land before the loop consumes any: they coalesce into
	// exactly one pending request.
	s.ShowNow()
	s.ShowNow()

	cancel, done := run(t, s)

	sink.next(t, time.Second) // initial show
	triggers = append(triggers, <-trigCh)

	early := sink.next(t, time.Second)
	if early.title != "二" {
		t.Fatalf("early show = %q, want 二 (cursor order preserved)", early.title)
	}
	triggers = append(triggers, <-trigCh)
	sink.none(t, 100*time.Millisecond)

	if triggers[0] != TriggerInterval || triggers[1] != TriggerSignal {
		t.Fatalf("triggers = %v", triggers)
	}

	cancel()
	waitDone(t, done, time.Second)
}

func TestCancellationWithinTick(t *testing.T) {
	sink := newCaptureSink()
	cfg := Config{Cadence: Interval(time.Hour), Tick: 5 * time.Millisecond}
	s, err := New(cfg, seqOf(t, vocab.Entry{Word: "一"}), sink, logx.Nop())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	cancel, done := run(t, s)
	sink.next(t, time.Second)

	cancel()
	// Far below the hour-long interval; generous against scheduler jitter.
	waitDone(t, done, 500*time.Millisecond)
}

func TestForceShowsExactlyOnce(t *testing.T) {
	sink := newCaptureSink()
	seq := seqOf(t, vocab.Entry{Word: "一", Reading: "いち"}, vocab.Entry{Word: "二"})
	var got []Trigger
	s, err := New(Config{Once: true}, seq, sink, logx.Nop(),
		WithOnShown(func(e vocab.Entry, cursor int, trigger Trigger) { got = append(got, trigger) }),
	)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	p := sink.next(t, time.Second)
	if p.title != "一" || p.body != "いち" {
		t.Fatalf("force show = %q/%q, want first entry", p.title, p.body)
	}
	sink.none(t, 50*time.Millisecond)
	if len(got) != 1 || got[0] != TriggerForce {
		t.Fatalf("triggers = %v, want one force", got)
	}
}

func TestSwapResetsCursor(t *testing.T) {
	sink := newCaptureSink()
	cfg := Config{Cadence: Interval(100 * time.Millisecond), Tick: time.Millisecond}
	s, err := New(cfg, seqOf(t, vocab.Entry{Word: "old-a"}, vocab.Entry{Word: "old-b"}), sink, logx.Nop())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	cancel, done := run(t, s)

	if p := sink.next(t, time.Second); p.title != "old-a" {
		t.Fatalf("first = %q", p.title)
	}

	s.Swap(seqOf(t, vocab.Entry{Word: "new-x"}, vocab.Entry{Word: "new-y"}))

	if p := sink.next(t, time.Second); p.title != "new-x" {
		t.Fatalf("after swap = %q, want new-x (cursor reset)", p.title)
	}
	if p := sink.next(t, time.Second); p.title != "new-y" {
		t.Fatalf("second after swap = %q, want new-y", p.title)
	}

	cancel()
	waitDone(t, done, time.Second)
}
