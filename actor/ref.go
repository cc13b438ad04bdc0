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

// ActorRef is the capability-erased view of a typed actor reference.
//
// It exposes just enough to store heterogeneous references in one
// registry and to drive lifecycle operations: the actor path, identity
// comparison and system-signal delivery. Recovering the typed reference
// requires a checked downcast via As.
type ActorRef interface {
	// Path returns the unique path of the referenced actor.
	Path() *Path
	// Equals compares two references by their unique path, that is
	// segments plus incarnation identifier.
	Equals(other ActorRef) bool

	sendSystem(signal systemSignal)
	isRunnable() bool
}

// Ref is a typed handle to an actor accepting messages of type M.
//
// A Ref can be freely shared between goroutines. Sending through a Ref
// never blocks the caller and never fails: messages to an actor that has
// already stopped are rerouted to the dead-letter sink.
type Ref[M any] struct {
	path *Path
	cell *cell[M]
}

// enforce compilation error
var _ ActorRef = (*Ref[any])(nil)

// Path returns the unique path of the referenced actor.
func (x *Ref[M]) Path() *Path {
	return x.path
}

// Equals compares two references by unique path.
func (x *Ref[M]) Equals(other ActorRef) bool {
	if x == nil || other == nil {
		return false
	}
	otherPath := other.Path()
	if otherPath == nil {
		return false
	}
	return x.path.SameAs(otherPath)
}

// Tell enqueues the given message onto the target's user channel and
// returns immediately. Delivery is best effort: when the target has
// stopped the message lands at the dead-letter sink instead.
func (x *Ref[M]) Tell(message M) {
	x.cell.pushUser(message)
}

// sendSystem enqueues a control signal onto the target's priority channel.
func (x *Ref[M]) sendSystem(signal systemSignal) {
	x.cell.pushSystem(signal)
}

// isRunnable reports whether the referenced actor still accepts messages.
func (x *Ref[M]) isRunnable() bool {
	return x.cell.isRunnable()
}

// As attempts to recover the typed reference behind an ActorRef.
// It returns false when the reference is nil, NoSender or refers to an
// actor with a different message type. A failed downcast is not an
// error: callers treat it as "no such typed actor".
func As[M any](ref ActorRef) (*Ref[M], bool) {
	typed, ok := ref.(*Ref[M])
	if !ok || typed == nil {
		return nil, false
	}
	return typed, true
}

// NoSender is the null actor reference. It is never runnable and
// silently swallows system signals.
var NoSender ActorRef = noSender{}

type noSender struct{}

func (noSender) Path() *Path { return nil }

func (noSender) Equals(other ActorRef) bool {
	_, ok := other.(noSender)
	return ok
}

func (noSender) sendSystem(systemSignal) {}

func (noSender) isRunnable() bool { return false }
