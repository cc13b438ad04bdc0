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

// Mailbox defines the contract for the user channel of an actor's
// message queue.
//
// Concurrency and ordering
//   - Implementations MUST be safe for multiple concurrent producers
//     calling Enqueue.
//   - The runtime consumes from a single goroutine at a time, so
//     implementations SHOULD optimize Dequeue for a single consumer (MPSC).
//   - FIFO ordering per producer is expected.
//
// Non-blocking behavior
//   - Enqueue SHOULD be non-blocking. Bounded implementations MUST return
//     an error when full instead of blocking; the runtime reroutes the
//     rejected message to the dead-letter sink.
//   - Dequeue MUST be non-blocking and report false when the mailbox is
//     empty. The runtime polls Dequeue in a loop.
//
// Resource management
//   - Dispose MUST release any resources held by the implementation.
//     After Dispose, Enqueue SHOULD fail and Dequeue SHOULD report false.
type Mailbox[M any] interface {
	// Enqueue pushes a message into the mailbox.
	Enqueue(msg M) error
	// Dequeue fetches a message from the mailbox.
	// It reports false when the mailbox is empty.
	Dequeue() (M, bool)
	// IsEmpty reports whether the mailbox currently has no messages.
	// This is a best-effort snapshot under concurrency.
	IsEmpty() bool
	// Len returns a snapshot of the number of messages in the mailbox.
	Len() int64
	// Dispose releases any resources used by the implementation.
	// The mailbox MUST NOT be used after Dispose returns.
	Dispose()
}
