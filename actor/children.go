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
	"github.com/tochemey/loom/internal/collection"
)

// children tracks an actor's direct children by name. Each live child
// name maps to exactly one reference.
//
// Writes are logically serialized: a child slot is only mutated from its
// parent's execution (spawn during message processing, removal when a
// termination signal is handled) or under the owning provider's spawn
// lock. The concurrent map makes reads from other goroutines safe.
type children struct {
	underlying *collection.Map[string, ActorRef]
}

// newChildren creates an empty children registry.
func newChildren() *children {
	return &children{
		underlying: collection.NewMap[string, ActorRef](),
	}
}

// insert registers the given reference under its name.
func (x *children) insert(ref ActorRef) {
	x.underlying.Set(ref.Path().Name(), ref)
}

// find returns the child registered under the given name.
func (x *children) find(name string) (ActorRef, bool) {
	ref, ok := x.underlying.Get(name)
	if !ok || ref == nil {
		return nil, false
	}
	return ref, true
}

// removeByPath drops the registration matching the given unique path
// and reports whether a removal happened. The slot is only cleared when
// it still holds the exact same incarnation, so a stale path from a
// previous incarnation never unregisters the current holder of the
// name.
func (x *children) removeByPath(path *Path) bool {
	if path == nil {
		return false
	}
	existing, ok := x.underlying.Get(path.Name())
	if !ok || existing == nil {
		return false
	}
	if !existing.Path().SameAs(path) {
		return false
	}
	x.underlying.Delete(path.Name())
	return true
}

// size returns the number of live children.
func (x *children) size() int {
	return x.underlying.Len()
}

// refs returns a snapshot of the current children references.
func (x *children) refs() []ActorRef {
	return x.underlying.Values()
}

// reset drops all registrations.
func (x *children) reset() {
	x.underlying.Reset()
}
