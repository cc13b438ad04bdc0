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
	gods "github.com/Workiva/go-datastructures/queue"
)

// BoundedMailbox is a bounded MPSC mailbox backed by a ring buffer.
//
// Characteristics
//   - Bounded capacity: the queue has a fixed size.
//   - Enqueue does not block: when the mailbox is full it returns
//     ErrMailboxFull and the runtime reroutes the message to the
//     dead-letter sink.
//   - Concurrency: safe for multiple producers and a single consumer.
//   - FIFO ordering: messages are dequeued in the order they were enqueued.
//
// Use this mailbox when a runaway producer must not grow an actor's
// backlog without bound.
type BoundedMailbox[M any] struct {
	underlying *gods.RingBuffer
}

// enforce compilation error
var _ Mailbox[any] = (*BoundedMailbox[any])(nil)

// NewBoundedMailbox creates a new bounded mailbox with the given
// capacity. Capacity must be a positive integer.
func NewBoundedMailbox[M any](capacity int) *BoundedMailbox[M] {
	return &BoundedMailbox[M]{
		underlying: gods.NewRingBuffer(uint64(capacity)),
	}
}

// Enqueue inserts a message into the mailbox. It returns ErrMailboxFull
// when the capacity is exhausted and an error when the mailbox has been
// disposed.
func (m *BoundedMailbox[M]) Enqueue(msg M) error {
	ok, err := m.underlying.Offer(msg)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMailboxFull
	}
	return nil
}

// Dequeue removes and returns the next message from the mailbox.
// Reports false when the mailbox is empty or disposed.
// Intended for a single consumer goroutine.
func (m *BoundedMailbox[M]) Dequeue() (M, bool) {
	var zero M
	if m.underlying.Len() == 0 || m.underlying.IsDisposed() {
		return zero, false
	}
	item, err := m.underlying.Get()
	if err != nil {
		return zero, false
	}
	msg, ok := item.(M)
	if !ok {
		return zero, false
	}
	return msg, true
}

// IsEmpty reports whether the mailbox currently has no messages.
func (m *BoundedMailbox[M]) IsEmpty() bool {
	return m.underlying.Len() == 0
}

// Len returns the current number of messages in the mailbox.
func (m *BoundedMailbox[M]) Len() int64 {
	return int64(m.underlying.Len())
}

// Dispose releases the underlying ring buffer and unblocks any internal
// waiters maintained by it.
func (m *BoundedMailbox[M]) Dispose() {
	m.underlying.Dispose()
}
