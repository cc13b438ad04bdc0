/*
 * MIT License
 *
 * Copyright (c) 2022-2026 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

import "time"

const (
	// DeadlettersTopic is the event stream topic carrying Deadletter events.
	DeadlettersTopic = "deadletters"
	// LifecycleTopic is the event stream topic carrying ActorStarted and
	// ActorStopped events.
	LifecycleTopic = "lifecycle"
)

// systemSignal is a control message delivered on the priority channel of
// an actor mailbox. System signals drive lifecycle transitions and are
// always observed before queued user messages.
type systemSignal interface {
	isSystemSignal()
}

// postStart instructs a freshly created actor to transition to running.
type postStart struct{}

// poisonPill instructs an actor to stop after the signal is observed.
type poisonPill struct{}

// terminated notifies a parent that one of its children fully stopped.
type terminated struct {
	path *Path
}

func (postStart) isSystemSignal()  {}
func (poisonPill) isSystemSignal() {}
func (terminated) isSystemSignal() {}

// Deadletter is published to the event stream for every message that
// could not be delivered to its intended target.
type Deadletter struct {
	receiver string
	message  any
	sendTime time.Time
	reason   string
}

// NewDeadletter creates a new Deadletter event.
func NewDeadletter(receiver string, message any, sendTime time.Time, reason string) *Deadletter {
	return &Deadletter{
		receiver: receiver,
		message:  message,
		sendTime: sendTime,
		reason:   reason,
	}
}

// Receiver returns the path string of the intended target.
func (d *Deadletter) Receiver() string { return d.receiver }

// Message returns the original message that could not be delivered.
func (d *Deadletter) Message() any { return d.message }

// SendTime returns the time the message was sent.
func (d *Deadletter) SendTime() time.Time { return d.sendTime }

// Reason returns the reason the message was dead-lettered.
func (d *Deadletter) Reason() string { return d.reason }

// ActorStarted defines the actor started event
type ActorStarted struct {
	path      string
	startedAt time.Time
}

// NewActorStarted creates a new ActorStarted event stamped with the current UTC time.
func NewActorStarted(path string) *ActorStarted {
	return &ActorStarted{path: path, startedAt: time.Now().UTC()}
}

// Path returns the started actor's path string.
func (a *ActorStarted) Path() string { return a.path }

// StartedAt returns the time the actor started.
func (a *ActorStarted) StartedAt() time.Time { return a.startedAt }

// ActorStopped defines the actor stopped event
type ActorStopped struct {
	path      string
	stoppedAt time.Time
}

// NewActorStopped creates a new ActorStopped event stamped with the current UTC time.
func NewActorStopped(path string) *ActorStopped {
	return &ActorStopped{path: path, stoppedAt: time.Now().UTC()}
}

// Path returns the stopped actor's path string.
func (a *ActorStopped) Path() string { return a.path }

// StoppedAt returns the time the actor stopped.
func (a *ActorStopped) StoppedAt() time.Time { return a.stoppedAt }
