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

import (
	"context"

	"github.com/tochemey/loom/log"
)

// ReceiveContext is handed to a Behavior for every processed message.
// It gives the actor access to the message, its own reference, its
// position in the tree and the spawn/stop protocol for its children.
//
// A ReceiveContext is only valid for the duration of the Behavior call
// that received it. It must not be retained or used from other
// goroutines.
type ReceiveContext[M any] struct {
	ctx     context.Context
	message M
	cell    *cell[M]
}

// enforce compilation error
var _ Spawner = (*ReceiveContext[any])(nil)

// Context returns the context attached to the actor system. It is
// canceled when the system terminates.
func (x *ReceiveContext[M]) Context() context.Context {
	return x.ctx
}

// Message returns the message currently being processed.
func (x *ReceiveContext[M]) Message() M {
	return x.message
}

// Self returns the typed reference of the actor processing the message.
func (x *ReceiveContext[M]) Self() *Ref[M] {
	return x.cell.ref()
}

// Parent returns the reference of the actor's parent. For top-level
// actors the parent is the user guardian.
func (x *ReceiveContext[M]) Parent() ActorRef {
	return x.cell.parent
}

// ActorSystem returns the actor system the actor runs in.
func (x *ReceiveContext[M]) ActorSystem() *ActorSystem {
	return x.cell.system
}

// Logger returns the actor system logger.
func (x *ReceiveContext[M]) Logger() log.Logger {
	return x.cell.system.Logger()
}

// Become replaces the actor's current behavior with the given one. The
// new behavior takes effect for the next message. Lifecycle state is
// unaffected.
func (x *ReceiveContext[M]) Become(behavior Behavior[M]) {
	if behavior == nil {
		return
	}
	x.cell.behaviors.Replace(behavior)
}

// BecomeStacked pushes the given behavior on top of the current one. The
// previous behavior is restored by UnBecome.
func (x *ReceiveContext[M]) BecomeStacked(behavior Behavior[M]) {
	if behavior == nil {
		return
	}
	x.cell.behaviors.Push(behavior)
}

// UnBecome pops the top behavior off the stack, reverting to the
// previous one. The initial behavior is never popped.
func (x *ReceiveContext[M]) UnBecome() {
	if x.cell.behaviors.Len() > 1 {
		x.cell.behaviors.Pop()
	}
}

// Children returns the references of the actor's current children.
func (x *ReceiveContext[M]) Children() []ActorRef {
	return x.cell.childrenRegistry.refs()
}

// Child returns the reference of the direct child with the given name.
// It reports false when no such child exists.
func (x *ReceiveContext[M]) Child(name string) (ActorRef, bool) {
	return x.cell.childrenRegistry.find(name)
}

// Stop runs the stop protocol for the given direct child: the child
// leaves the registry before the call returns, so its name is
// immediately reusable. It returns ErrNotDirectChild when the reference
// does not point below this actor. Stopping an already-stopped child,
// or passing a stale reference to a previous incarnation of a child
// name, is a silent no-op.
func (x *ReceiveContext[M]) Stop(child ActorRef) error {
	return x.cell.stopChild(child)
}

// spawnSite makes the receive context a spawn location: children created
// here are registered with this actor and become its direct children.
func (x *ReceiveContext[M]) spawnSite() *spawnSite {
	return &spawnSite{
		system:     x.cell.system,
		parentPath: x.cell.path,
		parentRef:  x.cell.ref(),
		registry:   x.cell.childrenRegistry,
		privileged: x.cell.privileged,
	}
}
