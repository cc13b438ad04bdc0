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

// Package workerpool provides a fixed-size worker pool for concurrent
// task execution. Work submission never blocks the submitter: tasks are
// buffered in an unbounded queue and drained by a fixed set of workers.
package workerpool

import (
	"runtime"
	"sync"

	"go.uber.org/atomic"
)

// WorkerPool executes submitted tasks on a fixed number of workers.
//
// The pool must be started with Start before any work is submitted and
// stopped with Stop once it is no longer needed. Tasks submitted after
// Stop are silently dropped.
type WorkerPool struct {
	size  int
	mu    sync.Mutex
	cond  *sync.Cond
	tasks []func()
	head  int

	started atomic.Bool
	stopped atomic.Bool
	wg      sync.WaitGroup
}

// New creates an instance of WorkerPool with the given options.
// The default pool size is the number of available processors.
func New(opts ...Option) *WorkerPool {
	pool := &WorkerPool{
		size: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt.Apply(pool)
	}
	pool.cond = sync.NewCond(&pool.mu)
	return pool
}

// Size returns the number of workers owned by the pool.
func (pool *WorkerPool) Size() int {
	return pool.size
}

// Start spins up the pool workers. Calling Start on a started pool is a no-op.
func (pool *WorkerPool) Start() {
	if !pool.started.CompareAndSwap(false, true) {
		return
	}
	pool.wg.Add(pool.size)
	for i := 0; i < pool.size; i++ {
		go pool.work()
	}
}

// SubmitWork hands a task to the pool. It never blocks the caller.
// Tasks submitted before Start or after Stop are dropped.
func (pool *WorkerPool) SubmitWork(task func()) {
	if task == nil || !pool.started.Load() || pool.stopped.Load() {
		return
	}
	pool.mu.Lock()
	pool.tasks = append(pool.tasks, task)
	pool.cond.Signal()
	pool.mu.Unlock()
}

// Stop shuts the pool down and waits for the workers to finish.
// Pending tasks that have already been submitted are executed before
// the workers exit.
func (pool *WorkerPool) Stop() {
	if !pool.started.Load() || !pool.stopped.CompareAndSwap(false, true) {
		return
	}
	pool.mu.Lock()
	pool.cond.Broadcast()
	pool.mu.Unlock()
	pool.wg.Wait()
}

// work is the worker loop. Each worker picks the next pending task,
// runs it, and parks on the condition variable when the queue is empty.
func (pool *WorkerPool) work() {
	defer pool.wg.Done()
	for {
		pool.mu.Lock()
		for pool.head == len(pool.tasks) && !pool.stopped.Load() {
			pool.cond.Wait()
		}

		if pool.head == len(pool.tasks) {
			// stopped and drained
			pool.mu.Unlock()
			return
		}

		task := pool.tasks[pool.head]
		pool.tasks[pool.head] = nil
		pool.head++

		// compact the backlog once it is fully consumed so the slice
		// does not grow without bound
		if pool.head == len(pool.tasks) {
			pool.tasks = pool.tasks[:0]
			pool.head = 0
		}
		pool.mu.Unlock()

		task()
	}
}
