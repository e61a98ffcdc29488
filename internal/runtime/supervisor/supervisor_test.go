package supervisor

import (
	"context"
	"errors"
	"testing"
	"time"

	logx "vocabpop/pkg/logx"
)

func TestStopWaitsForGoroutines(t *testing.T) {
	t.Parallel()
	s := New(context.Background(), WithLogger(logx.Nop()))

	exited := make(chan struct{})
	s.Go("worker", func(ctx context.Context) error {
		<-ctx.Done()
		close(exited)
		return nil
	})

	if err := s.Stop(time.Second); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	select {
	case <-exited:
	default:
		t.Fatal("Stop returned before goroutine exited")
	}
}

func TestCancelOnFirstError(t *testing.T) {
	t.Parallel()
	s := New(context.Background(), WithLogger(logx.Nop()), WithCancelOnError(true))

	boom := errors.New("boom")
	s.Go("failing", func(ctx context.Context) error { return boom })
	s.Go("waiting", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled after first error")
	}
	if err := s.Stop(time.Second); !errors.Is(err, boom) {
		t.Fatalf("Stop error = %v, want boom", err)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	t.Parallel()
	s := New(context.Background(), WithLogger(logx.Nop()), WithCancelOnError(true))

	s.Go("panicky", func(ctx context.Context) error { panic("oops") })

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("panic did not cancel the supervisor")
	}
	if err := s.Stop(time.Second); err == nil {
		t.Fatal("expected panic to surface as an error")
	}
}

func TestStopTimeout(t *testing.T) {
	t.Parallel()
	s := New(context.Background(), WithLogger(logx.Nop()))

	release := make(chan struct{})
	s.Go("stubborn", func(ctx context.Context) error {
		<-release
		return nil
	})

	if err := s.Stop(20 * time.Millisecond); err == nil {
		t.Fatal("expected stop timeout error")
	}
	close(release)
}
