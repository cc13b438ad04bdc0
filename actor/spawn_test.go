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
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/loom/log"
)

// discard is a behavior swallowing every message.
func discard[M any](*ReceiveContext[M]) {}

func newTestSystem(t *testing.T) *ActorSystem {
	t.Helper()
	system, err := NewActorSystem("testSys", WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	require.NotNil(t, system)
	return system
}

func TestSpawn(t *testing.T) {
	t.Run("With a top level actor", func(t *testing.T) {
		system := newTestSystem(t)

		received := make(chan string, 1)
		ref, err := Spawn[string](system, "worker", func(ctx *ReceiveContext[string]) {
			received <- ctx.Message()
		})
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, "/user/worker", ref.Path().String())

		ref.Tell("hello")
		select {
		case msg := <-received:
			assert.Equal(t, "hello", msg)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for the message")
		}

		assert.EqualValues(t, 1, system.NumActors())
		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With a duplicate name", func(t *testing.T) {
		system := newTestSystem(t)

		_, err := Spawn[string](system, "worker", discard[string])
		require.NoError(t, err)

		ref, err := Spawn[int](system, "worker", discard[int])
		require.ErrorIs(t, err, ErrActorAlreadyExists)
		assert.Nil(t, ref)
		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With an empty name", func(t *testing.T) {
		system := newTestSystem(t)
		_, err := Spawn[string](system, "", discard[string])
		require.ErrorIs(t, err, ErrNameRequired)
		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With an invalid name", func(t *testing.T) {
		system := newTestSystem(t)
		_, err := Spawn[string](system, "-worker", discard[string])
		require.ErrorIs(t, err, ErrInvalidActorName)
		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With the reserved sentinel prefix", func(t *testing.T) {
		system := newTestSystem(t)
		_, err := Spawn[string](system, "$worker", discard[string])
		require.ErrorIs(t, err, ErrReservedName)
		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With a reserved top level name", func(t *testing.T) {
		system := newTestSystem(t)
		for _, name := range []string{"user", "system", "deadletters"} {
			_, err := Spawn[string](system, name, discard[string])
			require.ErrorIs(t, err, ErrReservedName, "name=%s", name)
		}
		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With a nil behavior", func(t *testing.T) {
		system := newTestSystem(t)
		_, err := Spawn[string](system, "worker", nil)
		require.ErrorIs(t, err, ErrInvalidInitialBehavior)
		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With a terminated system", func(t *testing.T) {
		system := newTestSystem(t)
		require.NoError(t, system.Terminate(context.TODO()))
		_, err := Spawn[string](system, "worker", discard[string])
		require.ErrorIs(t, err, ErrActorSystemNotStarted)
	})
	t.Run("With concurrent spawns of distinct names", func(t *testing.T) {
		system := newTestSystem(t)

		const count = 50
		var wg sync.WaitGroup
		wg.Add(count)
		errs := make(chan error, count)
		for i := 0; i < count; i++ {
			go func(i int) {
				defer wg.Done()
				_, err := Spawn[int](system, "worker-"+strconv.Itoa(i), discard[int])
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
		assert.EqualValues(t, count, system.NumActors())
		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With concurrent spawns of the same name", func(t *testing.T) {
		system := newTestSystem(t)

		const count = 20
		var wg sync.WaitGroup
		wg.Add(count)
		errs := make(chan error, count)
		for i := 0; i < count; i++ {
			go func() {
				defer wg.Done()
				_, err := Spawn[int](system, "highlander", discard[int])
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			require.ErrorIs(t, err, ErrActorAlreadyExists)
		}
		assert.Equal(t, 1, succeeded)
		require.NoError(t, system.Terminate(context.TODO()))
	})
}

func TestSpawnAnonymous(t *testing.T) {
	t.Run("With generated names", func(t *testing.T) {
		system := newTestSystem(t)

		first, err := SpawnAnonymous[string](system, discard[string])
		require.NoError(t, err)
		second, err := SpawnAnonymous[string](system, discard[string])
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(first.Path().Name(), "$"))
		assert.True(t, strings.HasPrefix(second.Path().Name(), "$"))
		assert.NotEqual(t, first.Path().Name(), second.Path().Name())
		require.NoError(t, system.Terminate(context.TODO()))
	})
}

func TestChildActors(t *testing.T) {
	type command struct {
		action string
		name   string
		target ActorRef
		reply  chan any
	}

	parentBehavior := func(ctx *ReceiveContext[*command]) {
		cmd := ctx.Message()
		switch cmd.action {
		case "spawn":
			child, err := Spawn[string](ctx, cmd.name, discard[string])
			if err != nil {
				cmd.reply <- err
				return
			}
			cmd.reply <- child
		case "stop":
			cmd.reply <- ctx.Stop(cmd.target)
		case "children":
			cmd.reply <- ctx.Children()
		}
	}

	t.Run("With spawning and listing children", func(t *testing.T) {
		system := newTestSystem(t)

		parent, err := Spawn[*command](system, "parent", parentBehavior)
		require.NoError(t, err)

		reply := make(chan any, 1)
		parent.Tell(&command{action: "spawn", name: "junior", reply: reply})
		result := <-reply
		child, ok := result.(*Ref[string])
		require.True(t, ok, "unexpected reply: %v", result)
		assert.Equal(t, "/user/parent/junior", child.Path().String())

		parent.Tell(&command{action: "children", reply: reply})
		children, ok := (<-reply).([]ActorRef)
		require.True(t, ok)
		require.Len(t, children, 1)
		assert.True(t, children[0].Equals(child))

		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With a duplicate child name", func(t *testing.T) {
		system := newTestSystem(t)

		parent, err := Spawn[*command](system, "parent", parentBehavior)
		require.NoError(t, err)

		reply := make(chan any, 1)
		parent.Tell(&command{action: "spawn", name: "junior", reply: reply})
		_, ok := (<-reply).(*Ref[string])
		require.True(t, ok)

		parent.Tell(&command{action: "spawn", name: "junior", reply: reply})
		err, ok = (<-reply).(error)
		require.True(t, ok)
		require.ErrorIs(t, err, ErrActorAlreadyExists)

		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With stopping a direct child", func(t *testing.T) {
		system := newTestSystem(t)

		parent, err := Spawn[*command](system, "parent", parentBehavior)
		require.NoError(t, err)

		reply := make(chan any, 1)
		parent.Tell(&command{action: "spawn", name: "junior", reply: reply})
		child, ok := (<-reply).(*Ref[string])
		require.True(t, ok)

		parent.Tell(&command{action: "stop", target: child, reply: reply})
		stopErr, _ := (<-reply).(error)
		require.NoError(t, stopErr)

		require.Eventually(t, func() bool {
			parent.Tell(&command{action: "children", reply: reply})
			children, _ := (<-reply).([]ActorRef)
			return len(children) == 0
		}, time.Second, 10*time.Millisecond)

		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With a child name reusable as soon as stop returns", func(t *testing.T) {
		system := newTestSystem(t)

		parent, err := Spawn[*command](system, "parent", parentBehavior)
		require.NoError(t, err)

		reply := make(chan any, 1)
		parent.Tell(&command{action: "spawn", name: "junior", reply: reply})
		first, ok := (<-reply).(*Ref[string])
		require.True(t, ok)

		parent.Tell(&command{action: "stop", target: first, reply: reply})
		stopErr, _ := (<-reply).(error)
		require.NoError(t, stopErr)

		// same name, processed right after the stop in the same cell
		parent.Tell(&command{action: "spawn", name: "junior", reply: reply})
		second, ok := (<-reply).(*Ref[string])
		require.True(t, ok, "respawn failed")
		assert.False(t, first.Equals(second))

		// a stale stop leaves the new incarnation in place
		parent.Tell(&command{action: "stop", target: first, reply: reply})
		stopErr, _ = (<-reply).(error)
		require.NoError(t, stopErr)
		parent.Tell(&command{action: "children", reply: reply})
		children, _ := (<-reply).([]ActorRef)
		require.Len(t, children, 1)
		assert.True(t, children[0].Equals(second))

		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With stopping an actor that is not a direct child", func(t *testing.T) {
		system := newTestSystem(t)

		parent, err := Spawn[*command](system, "parent", parentBehavior)
		require.NoError(t, err)
		stranger, err := Spawn[string](system, "stranger", discard[string])
		require.NoError(t, err)

		reply := make(chan any, 1)
		parent.Tell(&command{action: "stop", target: stranger, reply: reply})
		stopErr, ok := (<-reply).(error)
		require.True(t, ok)
		require.ErrorIs(t, stopErr, ErrNotDirectChild)

		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With stopping a subtree", func(t *testing.T) {
		system := newTestSystem(t)

		parent, err := Spawn[*command](system, "parent", parentBehavior)
		require.NoError(t, err)

		reply := make(chan any, 1)
		parent.Tell(&command{action: "spawn", name: "junior", reply: reply})
		_, ok := (<-reply).(*Ref[string])
		require.True(t, ok)

		require.EqualValues(t, 2, system.NumActors())
		require.NoError(t, system.Stop(parent))
		require.Eventually(t, func() bool {
			return system.NumActors() == 0
		}, time.Second, 10*time.Millisecond)

		require.NoError(t, system.Terminate(context.TODO()))
	})
}

func TestIncarnations(t *testing.T) {
	t.Run("With the name free for reuse the moment stop returns", func(t *testing.T) {
		system := newTestSystem(t)

		first, err := Spawn[string](system, "phoenix", discard[string])
		require.NoError(t, err)
		require.NoError(t, system.Stop(first))

		second, err := Spawn[string](system, "phoenix", discard[string])
		require.NoError(t, err)

		assert.True(t, first.Path().Equals(second.Path()))
		assert.False(t, first.Path().SameAs(second.Path()))
		assert.False(t, first.Equals(second))

		// a stale reference reaches the dead letters, never the new incarnation
		first.Tell("ghost")
		require.Eventually(t, func() bool {
			return system.DeadletterCountFor("/user/phoenix") >= 1
		}, time.Second, 10*time.Millisecond)

		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With a stale reference stop being a silent no-op", func(t *testing.T) {
		system := newTestSystem(t)

		first, err := Spawn[string](system, "phoenix", discard[string])
		require.NoError(t, err)
		require.NoError(t, system.Stop(first))

		received := make(chan string, 1)
		second, err := Spawn[string](system, "phoenix", func(ctx *ReceiveContext[string]) {
			received <- ctx.Message()
		})
		require.NoError(t, err)

		// stopping through the stale reference succeeds without touching
		// the current incarnation
		require.NoError(t, system.Stop(first))
		second.Tell("still here")
		select {
		case msg := <-received:
			assert.Equal(t, "still here", msg)
		case <-time.After(time.Second):
			t.Fatal("the current incarnation stopped processing messages")
		}

		require.NoError(t, system.Terminate(context.TODO()))
	})
	t.Run("With a double stop being a silent no-op", func(t *testing.T) {
		system := newTestSystem(t)

		ref, err := Spawn[string](system, "once", discard[string])
		require.NoError(t, err)
		require.NoError(t, system.Stop(ref))
		require.NoError(t, system.Stop(ref))
		require.NoError(t, system.Terminate(context.TODO()))
	})
}
