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
	"errors"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
)

const (
	// userGuardianName is the root of the user tree. Every top-level
	// actor spawned on the system lives under it.
	userGuardianName = "user"
	// systemGuardianName is the root of the system tree hosting the
	// runtime's own actors.
	systemGuardianName = "system"
)

// errGuardianStillRunning drives the stop-await polling loop.
var errGuardianStillRunning = errors.New("guardian has not stopped yet")

// refProvider is a spawn location rooted at a guardian. The user
// provider hands out top-level user actors, the system provider hosts
// runtime singletons. Guardians run the same spawn and stop protocol as
// every other actor; the provider only adds root anchoring and a spawn
// lock, since top-level spawns are not serialized by any parent cell.
type refProvider struct {
	system     *ActorSystem
	guardian   *cell[any]
	privileged bool
	locker     sync.Mutex
}

// enforce compilation error
var _ Spawner = (*refProvider)(nil)

// newRefProvider builds the guardian cell, wires it into the system and
// queues its start signal. The guardian is a well-known singleton: its
// path carries the opaque incarnation identifier.
func newRefProvider(system *ActorSystem, name string, privileged bool) *refProvider {
	path := newRootPath(name).withOpaqueID()
	guardian := newCell[any](system, path, NoSender, guardianBehavior, NewUnboundedMailbox[any](), privileged)
	system.cells.Store(path.String(), guardian.ref())
	guardian.start()
	return &refProvider{
		system:     system,
		guardian:   guardian,
		privileged: privileged,
	}
}

// guardianBehavior ignores user messages. Guardians only react to
// lifecycle signals.
func guardianBehavior(*ReceiveContext[any]) {}

// spawnSite anchors spawns at the guardian.
func (x *refProvider) spawnSite() *spawnSite {
	return &spawnSite{
		system:     x.system,
		parentPath: x.guardian.path,
		parentRef:  x.guardian.ref(),
		registry:   x.guardian.childrenRegistry,
		privileged: x.privileged,
		locker:     &x.locker,
	}
}

// ref returns the guardian's type-erased reference.
func (x *refProvider) ref() ActorRef {
	return x.guardian.ref()
}

// childCount returns the number of live actors directly under the guardian.
func (x *refProvider) childCount() int {
	return x.guardian.childrenRegistry.size()
}

// stopAwait queues the stop signal for the guardian and polls until its
// cell reaches the terminal state or the context expires. Stopping the
// guardian cascades the stop signal through its whole subtree.
func (x *refProvider) stopAwait(ctx context.Context) error {
	x.guardian.pushSystem(poisonPill{})
	retrier := retry.NewRetrier(30, 10*time.Millisecond, 300*time.Millisecond)
	return retrier.RunContext(ctx, func(context.Context) error {
		if cellState(x.guardian.state.Load()) != cellStopped {
			return errGuardianStillRunning
		}
		return nil
	})
}
