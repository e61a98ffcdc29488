// Package app wires configuration, logging, storage, the vocabulary
// loader, the notification sink and the rotation scheduler together.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"vocabpop/internal/config"
	"vocabpop/internal/notify"
	"vocabpop/internal/rotation"
	"vocabpop/internal/runtime/supervisor"
	"vocabpop/internal/storage"
	"vocabpop/internal/vocab"
	"vocabpop/internal/vocabwatch"
	logx "vocabpop/pkg/logx"
)

const stopTimeout = 5 * time.Second

type App struct {
	cfg    *config.Config
	logSvc *logx.Service
	log    logx.Logger

	store     storage.Store
	sink      *notify.Service
	sched     *rotation.Scheduler
	watcher   *vocabwatch.Watcher
	annotator *vocab.Annotator
}

// New builds the whole object graph. It fails fast on configuration
// errors, including an empty vocabulary.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logSvc, log := logx.New(cfg.Logging)
	a := &App{cfg: cfg, logSvc: logSvc, log: log}

	if cfg.Vocab.AnnotateReadings {
		ann, err := vocab.NewAnnotator()
		if err != nil {
			a.close()
			return nil, fmt.Errorf("annotator: %w", err)
		}
		a.annotator = ann
	}

	entries, err := a.loadEntries()
	if err != nil {
		a.close()
		return nil, err
	}
	if len(entries) == 0 {
		a.close()
		return nil, fmt.Errorf("no vocab entries found in %q; create text files under that directory", cfg.Vocab.Dir)
	}
	log.Info("vocabulary loaded", logx.Int("entries", len(entries)), logx.String("dir", cfg.Vocab.Dir))

	seq, err := vocab.NewSequence(entries, cfg.Vocab.Shuffle, nil)
	if err != nil {
		a.close()
		return nil, err
	}

	a.sink = notify.NewService(cfg.Notify, buildSink(cfg.Notify.Driver, log), log)

	a.store, err = storage.Open(cfg.Storage, log)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	rotCfg, err := a.rotationConfig()
	if err != nil {
		a.close()
		return nil, err
	}
	opts := []rotation.Option{}
	if a.store != nil {
		opts = append(opts, rotation.WithOnShown(a.recordShown))
	}
	a.sched, err = rotation.New(rotCfg, seq, a.sink, log, opts...)
	if err != nil {
		a.close()
		return nil, err
	}

	a.watcher = vocabwatch.New(cfg.Vocab.Dir, a.loadEntries, a.applyEntries, log)
	a.watcher.Prime(entries)

	return a, nil
}

// Run drives the daemon until ctx is canceled. In force mode it shows a
// single notification and returns immediately.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if a.cfg.Rotation.Force {
		err := a.sched.Run(ctx)
		a.log.Info("exiting vocabpop")
		return err
	}

	sup := supervisor.New(ctx,
		supervisor.WithLogger(a.log),
		supervisor.WithCancelOnError(true),
	)
	sup.Go("rotation", a.sched.Run)
	sup.Go("vocab-watch", a.watcher.Run)
	sup.Go("trigger", a.triggerLoop)

	// Best-effort readiness for systemd user units; a no-op elsewhere.
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)

	<-sup.Done()

	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	err := sup.Stop(stopTimeout)
	a.log.Info("exiting vocabpop")
	return err
}

// ShowNow forwards an external "show now" trigger to the scheduler.
func (a *App) ShowNow() { a.sched.ShowNow() }

func (a *App) loadEntries() ([]vocab.Entry, error) {
	entries, err := vocab.Load(a.cfg.Vocab.Dir, a.log)
	if err != nil {
		return nil, err
	}
	if a.annotator != nil {
		entries = a.annotator.Annotate(entries)
	}
	return entries, nil
}

// applyEntries swaps a freshly reloaded vocabulary into the scheduler.
func (a *App) applyEntries(entries []vocab.Entry) {
	seq, err := vocab.NewSequence(entries, a.cfg.Vocab.Shuffle, nil)
	if err != nil {
		return
	}
	a.sched.Swap(seq)
}

func (a *App) rotationConfig() (rotation.Config, error) {
	tick, err := config.DurationField("rotation.tick", a.cfg.Rotation.Tick, 0)
	if err != nil {
		return rotation.Config{}, err
	}
	if a.cfg.Rotation.Force {
		return rotation.Config{Once: true, Tick: tick}, nil
	}
	cadence, err := rotation.ParseCadence(a.cfg.Rotation.Cadence)
	if err != nil {
		return rotation.Config{}, fmt.Errorf("rotation.cadence: %w", err)
	}
	return rotation.Config{Cadence: cadence, Tick: tick}, nil
}

// recordShown appends one row to the history store; failures are logged
// and never reach the rotation loop.
func (a *App) recordShown(e vocab.Entry, cursor int, trigger rotation.Trigger) {
	title, body := e.Render()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := a.store.AppendShown(ctx, storage.ShownRecord{
		At:       time.Now(),
		Word:     e.Word,
		Title:    title,
		Body:     body,
		Trigger:  string(trigger),
		Position: cursor,
	})
	if err != nil {
		a.log.Warn("history append failed", logx.Err(err))
	}
}

// close releases held resources. a.store is never reassigned after New, so
// a rotation goroutine that outlives a Stop timeout races only with
// Store.Close; both drivers turn appends after close into plain errors,
// which recordShown logs and drops.
func (a *App) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.logSvc != nil {
		_ = a.logSvc.Close()
	}
}

func buildSink(driver string, log logx.Logger) notify.Sink {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "console":
		return notify.NewConsoleSink(nil)
	default:
		return notify.NewDesktopSink(notify.NewConsoleSink(nil), log)
	}
}
