//go:build !unix

package app

import "context"

// No out-of-band trigger source on this platform; ShowNow() remains
// available to embedders.
func (a *App) triggerLoop(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
