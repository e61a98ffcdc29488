// Package rotation drives the notification cadence.
//
// # Overview
//
// The Scheduler owns a read-only vocabulary sequence and a cursor. Each
// cycle it renders the entry under the cursor, hands the payload to the
// sink, advances the cursor modulo the sequence length, and waits for the
// next activation. Rotation is infinite and cyclic: after N cycles every
// entry has been shown exactly once, in sequence order.
//
// # Cadence formats
//
// The wait between cycles comes from a cadence string:
//
//   - Cron expressions: "0 9 * * *", "@hourly", "@every 55m".
//   - Interval durations: Go duration strings like "25m" or "1h30m".
//   - Interval HH:MM: "00:50" means every 50 minutes.
//
// To force interpretation, callers may prefix the string with "cron:",
// "interval:", or "every:".
//
// # Interrupt sources
//
// Two things can cut a wait short. ShowNow() requests an immediate show;
// requests coalesce, so rapid repeated triggers produce a single early
// cycle and never skip entries. Context cancellation stops the loop;
// an in-flight cycle always completes first, and the wait notices the
// cancellation within one tick.
package rotation
