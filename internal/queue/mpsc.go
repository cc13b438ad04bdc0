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

package queue

import (
	"sync/atomic"
)

// node is a single entry in the queue.
type node[T any] struct {
	next atomic.Pointer[node[T]]
	value T
}

// Mpsc is a Multi-Producer-Single-Consumer FIFO queue.
//
// Any number of goroutines may call Push concurrently, but exactly one
// goroutine must call Pop. Push never blocks and never fails.
// reference: https://concurrencyfreaks.blogspot.com/2014/04/multi-producer-single-consumer-queue.html
type Mpsc[T any] struct {
	head   atomic.Pointer[node[T]] // consumer side
	tail   atomic.Pointer[node[T]] // producers side
	length atomic.Int64
}

// NewMpsc creates an instance of Mpsc.
// The queue starts with a stub node so that producers append by swapping
// the tail and linking through the previous node.
func NewMpsc[T any]() *Mpsc[T] {
	stub := new(node[T])
	q := &Mpsc[T]{}
	q.head.Store(stub)
	q.tail.Store(stub)
	return q
}

// Push places the given value at the back of the queue.
// Safe for concurrent calls by multiple producers.
func (q *Mpsc[T]) Push(value T) {
	n := &node[T]{value: value}
	prev := q.tail.Swap(n)
	prev.next.Store(n)
	q.length.Add(1)
}

// Pop removes and returns the value at the front of the queue.
// Returns false when the queue is empty.
// Must be called by a single consumer goroutine.
func (q *Mpsc[T]) Pop() (T, bool) {
	var zero T
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		return zero, false
	}

	q.head.Store(next)
	value := next.value
	next.value = zero
	q.length.Add(-1)
	return value, true
}

// Len returns a snapshot of the queue length.
func (q *Mpsc[T]) Len() int64 {
	return q.length.Load()
}

// IsEmpty returns true when the queue has no element.
func (q *Mpsc[T]) IsEmpty() bool {
	head := q.head.Load()
	return head.next.Load() == nil
}
