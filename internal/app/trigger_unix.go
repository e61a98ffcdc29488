//go:build unix

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	logx "vocabpop/pkg/logx"
)

// triggerLoop turns SIGUSR1 into "show now" requests, the daemon-world
// equivalent of a tray menu action.
func (a *App) triggerLoop(ctx context.Context) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			a.log.Debug("show-now trigger received", logx.String("source", "SIGUSR1"))
			a.sched.ShowNow()
		}
	}
}
