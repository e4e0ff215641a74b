// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - RunStarted: a plan run begins
//   - GroupStarted: one transmission group enters simulation
//   - PolicyCompleted: one policy's year finished for a group
//   - GroupCompleted: both policies finished and gap metrics produced
//   - GroupFailed: a group aborted on a hard error
package events
