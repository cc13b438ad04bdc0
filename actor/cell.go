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
	"go.uber.org/atomic"

	"github.com/tochemey/loom/internal/queue"
)

// scheduling states of a cell on the dispatcher
const (
	// idle means there is no activity
	idle int32 = iota
	// busy means the cell is being scheduled or processed on a worker
	busy
)

// cellState tracks where a cell stands in its lifecycle.
type cellState int32

const (
	// cellCreated means the cell exists but has not been wired into the tree.
	cellCreated cellState = iota
	// cellStarting means the cell is registered and its start signal is queued.
	cellStarting
	// cellRunning means the start signal was observed and user messages flow.
	cellRunning
	// cellStopping means a stop signal was observed and teardown is underway.
	cellStopping
	// cellStopped is terminal. A stopped cell never processes a user
	// message again; a fresh spawn under the same name gets a new cell.
	cellStopped
)

// cell is the execution unit behind a typed actor reference. It owns the
// actor's mailbox, behavior stack and children registry, and it is the
// only place actor state is touched, which is what makes behaviors
// single-threaded without locks.
//
// A cell is scheduled onto the system's shared worker pool. The
// processing flag guarantees at most one worker runs the cell's receive
// loop at any time, so at most one message is processed per actor at
// once while different actors progress in parallel.
type cell[M any] struct {
	path       *Path
	system     *ActorSystem
	parent     ActorRef
	privileged bool

	behaviors *behaviorStack[M]
	mailbox   Mailbox[M]
	signals   *queue.Mpsc[systemSignal]

	state      *atomic.Int32
	processing *atomic.Int32

	childrenRegistry *children
	self             *Ref[M]
}

// newCell creates a cell in the created state. The caller wires it into
// the tree and calls start.
func newCell[M any](system *ActorSystem, path *Path, parent ActorRef, behavior Behavior[M], mailbox Mailbox[M], privileged bool) *cell[M] {
	x := &cell[M]{
		path:             path,
		system:           system,
		parent:           parent,
		privileged:       privileged,
		behaviors:        newBehaviorStack(behavior),
		mailbox:          mailbox,
		signals:          queue.NewMpsc[systemSignal](),
		state:            atomic.NewInt32(int32(cellCreated)),
		processing:       atomic.NewInt32(idle),
		childrenRegistry: newChildren(),
	}
	x.self = &Ref[M]{path: path, cell: x}
	return x
}

// ref returns the typed reference of this cell.
func (x *cell[M]) ref() *Ref[M] {
	return x.self
}

// isRunnable reports whether the cell still accepts user messages.
func (x *cell[M]) isRunnable() bool {
	switch cellState(x.state.Load()) {
	case cellStarting, cellRunning:
		return true
	default:
		return false
	}
}

// markStarting opens the cell for sends ahead of wiring it into the
// tree: messages arriving before the start signal queue behind it.
func (x *cell[M]) markStarting() {
	x.state.Store(int32(cellStarting))
}

// start queues the start signal. The cell transitions to running when
// the signal is observed, strictly before any queued user message.
func (x *cell[M]) start() {
	x.markStarting()
	x.pushSystem(postStart{})
}

// pushUser enqueues a user message and wakes the cell. Never blocks the
// caller: messages to a cell that is no longer runnable, or rejected by
// a full bounded mailbox, are rerouted to the dead-letter sink.
func (x *cell[M]) pushUser(message M) {
	if !x.isRunnable() {
		x.system.toDeadletter(x.path, message, "actor is not running")
		return
	}
	if err := x.mailbox.Enqueue(message); err != nil {
		x.system.toDeadletter(x.path, message, err.Error())
		return
	}
	x.schedule()
}

// pushSystem enqueues a control signal on the priority channel and
// wakes the cell. Signals to a stopped cell are dropped.
func (x *cell[M]) pushSystem(signal systemSignal) {
	if cellState(x.state.Load()) == cellStopped {
		return
	}
	x.signals.Push(signal)
	x.schedule()
}

// schedule submits the cell's receive loop to the worker pool when the
// cell is idle. Exactly one submission wins the idle-to-busy swap, so
// the receive loop never runs concurrently with itself.
func (x *cell[M]) schedule() {
	if x.processing.CompareAndSwap(idle, busy) {
		x.system.pool.SubmitWork(x.receiveLoop)
	}
}

// receiveLoop runs on a pool worker. It processes everything queued for
// the cell then releases the worker. The recheck after flipping back to
// idle closes the race with a producer that enqueued between the last
// dequeue and the flip. A cell parked before its start signal leaves
// its user backlog untouched; the start signal reschedules it.
func (x *cell[M]) receiveLoop() {
	for {
		waiting := x.runOnce()
		x.processing.Store(idle)
		pending := !x.signals.IsEmpty() || (!waiting && !x.mailbox.IsEmpty())
		if !pending {
			return
		}
		if !x.processing.CompareAndSwap(idle, busy) {
			return
		}
	}
}

// runOnce drains the priority channel first, then the user channel.
// Signals queued while a user message is being processed are observed
// before the next user message. It reports true when a queued user
// message must keep waiting for the start signal.
func (x *cell[M]) runOnce() bool {
	for {
		if signal, ok := x.signals.Pop(); ok {
			x.handleSignal(signal)
			continue
		}
		switch cellState(x.state.Load()) {
		case cellCreated, cellStarting:
			// user messages queue behind the start transition
			return !x.mailbox.IsEmpty()
		}
		message, ok := x.mailbox.Dequeue()
		if !ok {
			return false
		}
		if cellState(x.state.Load()) != cellRunning {
			x.system.toDeadletter(x.path, message, "actor is not running")
			continue
		}
		x.handleMessage(message)
	}
}

// handleSignal performs the lifecycle transition the signal demands.
func (x *cell[M]) handleSignal(signal systemSignal) {
	switch sig := signal.(type) {
	case postStart:
		if x.state.CompareAndSwap(int32(cellStarting), int32(cellRunning)) {
			x.system.publishLifecycle(NewActorStarted(x.path.String()))
		}
	case poisonPill:
		if x.isRunnable() {
			x.doStop()
		}
	case terminated:
		x.childrenRegistry.removeByPath(sig.path)
	}
}

// handleMessage runs the current behavior on the message. A panicking
// behavior loses the current message only: the panic is logged and the
// actor keeps running.
func (x *cell[M]) handleMessage(message M) {
	defer func() {
		if r := recover(); r != nil {
			x.system.Logger().Errorf("actor=(%s) panicked while processing a message: %v", x.path.String(), r)
		}
	}()
	behavior := x.behaviors.Peek()
	if behavior == nil {
		return
	}
	behavior(&ReceiveContext[M]{
		ctx:     x.system.ctx,
		message: message,
		cell:    x,
	})
}

// doStop tears the cell down: children get the stop signal, the cell
// leaves the tree and the remaining backlog goes to the dead-letter
// sink. Children stop asynchronously; their termination signals find
// this cell already stopped and are dropped.
func (x *cell[M]) doStop() {
	x.state.Store(int32(cellStopping))
	for _, child := range x.childrenRegistry.refs() {
		child.sendSystem(poisonPill{})
	}
	x.childrenRegistry.reset()
	x.state.Store(int32(cellStopped))
	for {
		message, ok := x.mailbox.Dequeue()
		if !ok {
			break
		}
		x.system.toDeadletter(x.path, message, "actor stopped")
	}
	x.mailbox.Dispose()
	x.system.removeCell(x.path)
	x.system.publishLifecycle(NewActorStopped(x.path.String()))
	x.parent.sendSystem(terminated{path: x.path})
}

// stopChild runs the stop protocol for the given direct child: the
// exact incarnation is removed from the registry first, so its name is
// free for reuse the moment the call returns, and the stop signal is
// sent only when the removal succeeded. A reference whose exact
// incarnation is already gone — the child stopped, or the reference is
// stale from a prior incarnation — is a silent no-op: stopping an
// already-stopped child is not an error.
func (x *cell[M]) stopChild(child ActorRef) error {
	if child == nil || child.Path() == nil {
		return ErrUndefinedActor
	}
	if !child.Path().Parent().Equals(x.path) {
		return NewErrNotDirectChild(child.Path().String())
	}
	if !x.childrenRegistry.removeByPath(child.Path()) {
		return nil
	}
	child.sendSystem(poisonPill{})
	return nil
}
