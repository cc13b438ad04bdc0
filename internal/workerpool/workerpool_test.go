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

package workerpool

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

func TestWorkerPool(t *testing.T) {
	t.Run("With default size", func(t *testing.T) {
		pool := New()
		assert.Equal(t, runtime.NumCPU(), pool.Size())
	})
	t.Run("With custom size", func(t *testing.T) {
		pool := New(WithSize(4))
		assert.Equal(t, 4, pool.Size())

		pool = New(WithSize(0))
		assert.Equal(t, 1, pool.Size())
	})
	t.Run("With submitted tasks executed", func(t *testing.T) {
		pool := New(WithSize(4))
		pool.Start()

		const tasks = 1000
		counter := atomic.NewInt64(0)
		var wg sync.WaitGroup
		wg.Add(tasks)
		for i := 0; i < tasks; i++ {
			pool.SubmitWork(func() {
				counter.Inc()
				wg.Done()
			})
		}
		wg.Wait()
		pool.Stop()
		assert.EqualValues(t, tasks, counter.Load())
	})
	t.Run("With pending tasks run before Stop returns", func(t *testing.T) {
		pool := New(WithSize(2))
		pool.Start()

		counter := atomic.NewInt64(0)
		for i := 0; i < 100; i++ {
			pool.SubmitWork(func() { counter.Inc() })
		}
		pool.Stop()
		assert.EqualValues(t, 100, counter.Load())
	})
	t.Run("With submission after Stop dropped", func(t *testing.T) {
		pool := New(WithSize(1))
		pool.Start()
		pool.Stop()

		executed := atomic.NewBool(false)
		pool.SubmitWork(func() { executed.Store(true) })
		assert.False(t, executed.Load())
	})
	t.Run("With submission before Start dropped", func(t *testing.T) {
		pool := New(WithSize(1))
		executed := atomic.NewBool(false)
		pool.SubmitWork(func() { executed.Store(true) })
		assert.False(t, executed.Load())
	})
}
