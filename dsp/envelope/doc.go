// Package envelope provides the amplitude envelopes that shape each voice.
//
// Two generators with different numeric behavior are available behind the
// common [Generator] interface:
//
//   - [AHDSR] recomputes its level from elapsed milliseconds on every sample.
//     Re-triggering while sounding starts the attack from the current level.
//   - [DAHDSR] is a tick-driven state machine that accumulates a per-sample
//     slope and supports a delay stage and DLS-style timing ([ModeDLS]).
//
// Zero-length stages are instantaneous in both.
package envelope
