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

// Behavior defines an actor's message-handling logic for messages of
// type M. The current behavior is the actor's private state machine: it
// can be swapped at any time from within message processing via
// ReceiveContext.Become and friends. Lifecycle transitions are driven by
// system signals and are orthogonal to behavior changes.
type Behavior[M any] func(ctx *ReceiveContext[M])

// behaviorStack is a stack of behaviors owned by a single execution
// cell. It needs no locking: the cell serializes all access.
type behaviorStack[M any] struct {
	items []Behavior[M]
}

// newBehaviorStack creates an instance of behaviorStack.
func newBehaviorStack[M any](initial Behavior[M]) *behaviorStack[M] {
	return &behaviorStack[M]{
		items: []Behavior[M]{initial},
	}
}

// Peek returns the top behavior without removing it.
func (bs *behaviorStack[M]) Peek() Behavior[M] {
	if len(bs.items) == 0 {
		return nil
	}
	return bs.items[len(bs.items)-1]
}

// Push installs a new behavior on top of the stack.
func (bs *behaviorStack[M]) Push(behavior Behavior[M]) {
	bs.items = append(bs.items, behavior)
}

// Pop removes and returns the top behavior.
func (bs *behaviorStack[M]) Pop() Behavior[M] {
	if len(bs.items) == 0 {
		return nil
	}
	top := bs.items[len(bs.items)-1]
	bs.items[len(bs.items)-1] = nil
	bs.items = bs.items[:len(bs.items)-1]
	return top
}

// Replace swaps the top behavior for the given one.
func (bs *behaviorStack[M]) Replace(behavior Behavior[M]) {
	if len(bs.items) == 0 {
		bs.items = append(bs.items, behavior)
		return
	}
	bs.items[len(bs.items)-1] = behavior
}

// Len returns the number of stacked behaviors.
func (bs *behaviorStack[M]) Len() int {
	return len(bs.items)
}
