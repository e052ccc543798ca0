// Package events provides the session lifecycle events published by the
// drill state machine.
//
// The state machine emits events without knowing who listens; the command
// wires in a logging handler. Handlers never influence the session: a failing
// handler is logged by the emitter and otherwise ignored by the publisher.
//
// The primary components are:
// - SessionEvent: one lifecycle step of a drill session
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
