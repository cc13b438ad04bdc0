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
	"github.com/tochemey/loom/internal/queue"
)

// UnboundedMailbox is the default unbounded, lock-free MPSC mailbox.
//
// Enqueue never blocks and never fails. FIFO ordering is preserved
// across all producers.
type UnboundedMailbox[M any] struct {
	underlying *queue.Mpsc[M]
}

// enforce compilation error
var _ Mailbox[any] = (*UnboundedMailbox[any])(nil)

// NewUnboundedMailbox creates an instance of UnboundedMailbox.
func NewUnboundedMailbox[M any]() *UnboundedMailbox[M] {
	return &UnboundedMailbox[M]{
		underlying: queue.NewMpsc[M](),
	}
}

// Enqueue places the given message in the mailbox. Never blocks;
// always returns nil. Safe for concurrent calls by multiple producers.
func (m *UnboundedMailbox[M]) Enqueue(msg M) error {
	m.underlying.Push(msg)
	return nil
}

// Dequeue removes and returns the message at the head of the mailbox.
// Reports false when the mailbox is empty.
// Must be called by a single consumer goroutine.
func (m *UnboundedMailbox[M]) Dequeue() (M, bool) {
	return m.underlying.Pop()
}

// IsEmpty returns true when the mailbox has no messages.
func (m *UnboundedMailbox[M]) IsEmpty() bool {
	return m.underlying.IsEmpty()
}

// Len returns a snapshot of the number of messages in the mailbox.
func (m *UnboundedMailbox[M]) Len() int64 {
	return m.underlying.Len()
}

// Dispose releases resources if needed. No-op for this mailbox.
func (m *UnboundedMailbox[M]) Dispose() {}
