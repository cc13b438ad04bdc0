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
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/loom/eventstream"
	"github.com/tochemey/loom/internal/collection"
	"github.com/tochemey/loom/internal/validation"
	"github.com/tochemey/loom/internal/workerpool"
	"github.com/tochemey/loom/log"
)

// errSystemStillDraining drives the terminate polling loop.
var errSystemStillDraining = errors.New("actor tree is still draining")

// ActorSystem is the root of an actor tree. It owns the shared
// dispatcher pool, the event stream, the scheduler and the two
// guardians anchoring the user and system trees.
//
// A system is running as soon as NewActorSystem returns and is torn down
// exactly once by Terminate. Spawning happens through the free functions
// Spawn and SpawnAnonymous with the system as the location for top-level
// actors.
type ActorSystem struct {
	name   string
	logger log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	pool         *workerpool.WorkerPool
	scheduler    *scheduler
	eventsStream eventstream.Stream

	// cells indexes every live cell by path string. Each cell removes
	// itself on stop, so an empty index means the tree fully drained.
	cells *collection.ShardedMap[ActorRef]

	// reservedNames are top-level names user code cannot claim.
	reservedNames mapset.Set[string]

	userProvider   *refProvider
	systemProvider *refProvider

	deadLetters   *deadLetterSink
	deadLetterRef *Ref[any]

	started    *atomic.Bool
	terminated *atomic.Bool
	done       chan struct{}
	locker     sync.Mutex

	anonymousSeq    *atomic.Int64
	workerPoolSize  int
	shutdownTimeout time.Duration
}

// enforce compilation error
var _ Spawner = (*ActorSystem)(nil)

// NewActorSystem creates and starts an actor system with the given name.
// The name must consist of word characters plus non-leading '-' or '_'.
//
// The returned system is immediately usable: its dispatcher pool,
// scheduler and guardians are running.
func NewActorSystem(name string, opts ...Option) (*ActorSystem, error) {
	if err := validation.
		New(validation.FailFast()).
		AddValidator(validation.NewPatternValidator(namePattern, name, ErrInvalidActorSystemName)).
		Validate(); err != nil {
		return nil, err
	}

	system := &ActorSystem{
		name:            name,
		logger:          log.NewZap(log.ErrorLevel, os.Stderr),
		cells:           collection.NewShardedMap[ActorRef](),
		reservedNames:   mapset.NewSet(userGuardianName, systemGuardianName, deadLetterSinkName),
		eventsStream:    eventstream.New(),
		started:         atomic.NewBool(false),
		terminated:      atomic.NewBool(false),
		done:            make(chan struct{}),
		anonymousSeq:    atomic.NewInt64(0),
		workerPoolSize:  0,
		shutdownTimeout: 3 * time.Second,
	}

	for _, opt := range opts {
		opt.Apply(system)
	}

	system.ctx, system.cancel = context.WithCancel(context.Background())

	poolOpts := make([]workerpool.Option, 0, 1)
	if system.workerPoolSize > 0 {
		poolOpts = append(poolOpts, workerpool.WithSize(system.workerPoolSize))
	}
	system.pool = workerpool.New(poolOpts...)
	system.pool.Start()

	system.scheduler = newScheduler(system.logger, system.shutdownTimeout)
	system.scheduler.Start(system.ctx)

	system.started.Store(true)

	system.systemProvider = newRefProvider(system, systemGuardianName, true)
	system.userProvider = newRefProvider(system, userGuardianName, false)

	system.deadLetters = newDeadLetterSink(system.eventsStream)
	sinkRef, err := Spawn[any](system.systemProvider, deadLetterSinkName, system.deadLetters.Receive, withOpaqueIdentity[any]())
	if err != nil {
		system.pool.Stop()
		system.scheduler.Stop(context.Background())
		system.cancel()
		return nil, err
	}
	system.deadLetterRef = sinkRef

	system.logger.Infof("%s actor system started", name)
	return system, nil
}

// Name returns the name of the actor system.
func (x *ActorSystem) Name() string {
	return x.name
}

// Logger returns the logger used by the actor system.
func (x *ActorSystem) Logger() log.Logger {
	return x.logger
}

// UserGuardian returns the reference of the guardian anchoring the user
// tree. All top-level actors are its children.
func (x *ActorSystem) UserGuardian() ActorRef {
	return x.userProvider.ref()
}

// SystemGuardian returns the reference of the guardian anchoring the
// runtime's own actors.
func (x *ActorSystem) SystemGuardian() ActorRef {
	return x.systemProvider.ref()
}

// NumActors returns the number of live actors in the user tree,
// excluding the guardian itself.
func (x *ActorSystem) NumActors() uint64 {
	prefix := pathSeparator + userGuardianName + pathSeparator
	count := uint64(0)
	x.cells.Range(func(key string, _ ActorRef) {
		if strings.HasPrefix(key, prefix) {
			count++
		}
	})
	return count
}

// DeadletterCount returns the total number of messages rerouted to the
// dead-letter sink since the system started.
func (x *ActorSystem) DeadletterCount() int64 {
	return x.deadLetters.Count()
}

// DeadletterCountFor returns the number of dead letters recorded for
// the actor with the given path string.
func (x *ActorSystem) DeadletterCountFor(path string) int64 {
	return x.deadLetters.CountFor(path)
}

// Subscribe creates an event stream subscriber and subscribes it to the
// given topics. Use DeadlettersTopic and LifecycleTopic to observe the
// runtime's own events.
func (x *ActorSystem) Subscribe(topics ...string) (eventstream.Subscriber, error) {
	if !x.isStarted() {
		return nil, ErrActorSystemNotStarted
	}
	subscriber := x.eventsStream.AddSubscriber()
	for _, topic := range topics {
		x.eventsStream.Subscribe(subscriber, topic)
	}
	return subscriber, nil
}

// Unsubscribe removes the given subscriber from the event stream.
func (x *ActorSystem) Unsubscribe(subscriber eventstream.Subscriber) {
	x.eventsStream.RemoveSubscriber(subscriber)
}

// Stop runs the stop protocol for the given top-level actor. The actor
// leaves the registry before the call returns, freeing its name for
// reuse; the actor and its subtree then stop asynchronously. It returns
// ErrNotDirectChild when the reference is not top-level. Stopping an
// already-stopped actor, or a stale reference to a previous incarnation
// of a name, is a silent no-op.
func (x *ActorSystem) Stop(ref ActorRef) error {
	if !x.isStarted() {
		return ErrActorSystemNotStarted
	}
	return x.userProvider.guardian.stopChild(ref)
}

// Terminate tears the system down: the scheduler stops, both guardian
// trees get the stop signal, and the call waits until every cell left
// the tree or the shutdown timeout expires. Terminate is one-shot;
// subsequent calls return ErrActorSystemNotStarted.
func (x *ActorSystem) Terminate(ctx context.Context) error {
	x.locker.Lock()
	if !x.started.Load() || !x.terminated.CompareAndSwap(false, true) {
		x.locker.Unlock()
		return ErrActorSystemNotStarted
	}
	x.locker.Unlock()

	x.logger.Infof("%s actor system is shutting down", x.name)

	ctx, cancel := context.WithTimeout(ctx, x.shutdownTimeout)
	defer cancel()

	// the scheduler and the user tree wind down in parallel; the system
	// tree goes last so late user dead letters still reach the sink
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		x.scheduler.Stop(egCtx)
		return nil
	})
	eg.Go(func() error {
		return x.userProvider.stopAwait(egCtx)
	})
	err := eg.Wait()
	err = multierr.Append(err, x.systemProvider.stopAwait(ctx))
	err = multierr.Append(err, x.awaitDrained(ctx))

	x.pool.Stop()
	x.eventsStream.Close()
	x.cancel()
	close(x.done)

	if err != nil {
		x.logger.Errorf("%s actor system shut down with failures: %v", x.name, err)
		return err
	}
	x.logger.Infof("%s actor system shut down", x.name)
	return nil
}

// WhenTerminated blocks until Terminate completed or the given context
// expires. It must not be called from inside an actor behavior: the
// behavior would hold a dispatcher worker while waiting for workers to
// finish.
func (x *ActorSystem) WhenTerminated(ctx context.Context) error {
	select {
	case <-x.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// spawnSite anchors top-level spawns at the user guardian.
func (x *ActorSystem) spawnSite() *spawnSite {
	return x.userProvider.spawnSite()
}

// isStarted reports whether the system accepts work.
func (x *ActorSystem) isStarted() bool {
	return x.started.Load() && !x.terminated.Load()
}

// nextAnonymousName returns a fresh system-generated actor name carrying
// the reserved sentinel prefix.
func (x *ActorSystem) nextAnonymousName() string {
	return reservedSentinel + strconv.FormatInt(x.anonymousSeq.Inc(), 36)
}

// toDeadletter records an undeliverable message. The event goes through
// the sink actor when it is running and is recorded directly otherwise,
// so nothing is lost during shutdown.
func (x *ActorSystem) toDeadletter(path *Path, message any, reason string) {
	deadletter := NewDeadletter(path.String(), message, time.Now().UTC(), reason)
	sink := x.deadLetterRef
	if sink != nil && sink.isRunnable() && !sink.path.SameAs(path) {
		sink.Tell(deadletter)
		return
	}
	x.deadLetters.record(deadletter)
}

// publishLifecycle pushes an actor lifecycle event on the event stream.
func (x *ActorSystem) publishLifecycle(event any) {
	x.eventsStream.Publish(LifecycleTopic, event)
}

// removeCell drops the cell registered under the given path, matching
// the exact incarnation so a respawn under the same path is untouched.
func (x *ActorSystem) removeCell(path *Path) {
	x.cells.DeleteIf(path.String(), func(ref ActorRef) bool {
		return ref.Path().SameAs(path)
	})
}

// awaitDrained polls until every cell removed itself from the index.
func (x *ActorSystem) awaitDrained(ctx context.Context) error {
	retrier := retry.NewRetrier(30, 10*time.Millisecond, 300*time.Millisecond)
	return retrier.RunContext(ctx, func(context.Context) error {
		if x.cells.Len() > 0 {
			return errSystemStillDraining
		}
		return nil
	})
}
