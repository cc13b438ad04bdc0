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
	"sync"
)

// Spawner is a location in the actor tree where new actors can be
// created: the actor system itself for top-level actors, or a
// ReceiveContext for children of the actor processing a message.
//
// Spawning happens through the free functions Spawn and SpawnAnonymous
// because the message type of the child is independent of the message
// type of its parent.
type Spawner interface {
	spawnSite() *spawnSite
}

// spawnSite captures everything a spawn needs about its location: the
// owning system, the parent's path and reference, the registry the new
// child is inserted into and whether the location may use reserved
// names. The locker serializes spawns from locations that are not
// already serialized by an execution cell.
type spawnSite struct {
	system     *ActorSystem
	parentPath *Path
	parentRef  ActorRef
	registry   *children
	privileged bool
	locker     *sync.Mutex
}

// spawnConfig holds the per-spawn knobs.
type spawnConfig[M any] struct {
	mailbox        Mailbox[M]
	opaqueIdentity bool
}

// newSpawnConfig applies the given options on top of the defaults.
func newSpawnConfig[M any](opts ...SpawnOption[M]) *spawnConfig[M] {
	config := &spawnConfig[M]{
		mailbox: NewUnboundedMailbox[M](),
	}
	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// SpawnOption configures a single spawn call.
type SpawnOption[M any] interface {
	// Apply sets the option on the spawn config.
	Apply(config *spawnConfig[M])
}

// enforce compilation error
var _ SpawnOption[any] = spawnOptionFunc[any](nil)

// spawnOptionFunc implements SpawnOption.
type spawnOptionFunc[M any] func(config *spawnConfig[M])

// Apply applies the option on the spawn config.
func (f spawnOptionFunc[M]) Apply(config *spawnConfig[M]) {
	f(config)
}

// WithMailbox sets a custom mailbox for the spawned actor. The default
// is an unbounded MPSC mailbox.
func WithMailbox[M any](mailbox Mailbox[M]) SpawnOption[M] {
	return spawnOptionFunc[M](func(config *spawnConfig[M]) {
		config.mailbox = mailbox
	})
}

// withOpaqueIdentity marks the spawned actor as a well-known singleton
// whose path carries the opaque incarnation identifier.
func withOpaqueIdentity[M any]() SpawnOption[M] {
	return spawnOptionFunc[M](func(config *spawnConfig[M]) {
		config.opaqueIdentity = true
	})
}

// Spawn creates an actor with the given name under the given location
// and returns its typed reference. The new actor starts processing
// messages asynchronously; messages sent through the returned reference
// are queued behind its start transition.
//
// Spawn fails with ErrNameRequired, ErrInvalidActorName or
// ErrReservedName when the name is unusable, and with
// ErrActorAlreadyExists when a live sibling already holds the name. A
// name becomes reusable once its previous holder stopped; the new actor
// is a distinct incarnation.
func Spawn[M any](location Spawner, name string, behavior Behavior[M], opts ...SpawnOption[M]) (*Ref[M], error) {
	if location == nil {
		return nil, ErrUndefinedActor
	}
	return spawnAt(location.spawnSite(), name, behavior, false, opts...)
}

// SpawnAnonymous creates an actor with a system-generated unique name
// under the given location. Generated names carry the reserved '$'
// prefix and never collide with user-chosen names.
func SpawnAnonymous[M any](location Spawner, behavior Behavior[M], opts ...SpawnOption[M]) (*Ref[M], error) {
	if location == nil {
		return nil, ErrUndefinedActor
	}
	site := location.spawnSite()
	return spawnAt(site, site.system.nextAnonymousName(), behavior, true, opts...)
}

// spawnAt runs the spawn protocol at the given site: validate, reserve
// the name slot, build the cell, wire it into the tree and queue its
// start signal.
func spawnAt[M any](site *spawnSite, name string, behavior Behavior[M], anonymous bool, opts ...SpawnOption[M]) (*Ref[M], error) {
	system := site.system
	if !system.isStarted() {
		return nil, ErrActorSystemNotStarted
	}
	if behavior == nil {
		return nil, ErrInvalidInitialBehavior
	}
	if err := validateActorName(name, site.privileged || anonymous); err != nil {
		return nil, err
	}
	if !site.privileged && !anonymous && system.reservedNames.Contains(name) {
		return nil, NewErrReservedName(name)
	}

	if site.locker != nil {
		site.locker.Lock()
		defer site.locker.Unlock()
	}

	if _, exists := site.registry.find(name); exists {
		return nil, NewErrActorAlreadyExists(name)
	}

	config := newSpawnConfig(opts...)
	path := site.parentPath.childPath(name)
	if config.opaqueIdentity {
		path = path.withOpaqueID()
	}

	cell := newCell(system, path, site.parentRef, behavior, config.mailbox, site.privileged)
	ref := cell.ref()
	// open the cell for sends before it becomes discoverable so a
	// sibling finding it through the registry queues behind the start
	// signal instead of dead-lettering
	cell.markStarting()
	site.registry.insert(ref)
	system.cells.Store(path.String(), ref)
	cell.start()
	return ref, nil
}
