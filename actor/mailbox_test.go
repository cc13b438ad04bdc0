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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnboundedMailbox(t *testing.T) {
	t.Run("With FIFO ordering", func(t *testing.T) {
		mailbox := NewUnboundedMailbox[int]()
		for i := 0; i < 100; i++ {
			require.NoError(t, mailbox.Enqueue(i))
		}
		assert.EqualValues(t, 100, mailbox.Len())
		for i := 0; i < 100; i++ {
			msg, ok := mailbox.Dequeue()
			require.True(t, ok)
			assert.Equal(t, i, msg)
		}
		_, ok := mailbox.Dequeue()
		assert.False(t, ok)
		assert.True(t, mailbox.IsEmpty())
	})
	t.Run("With concurrent producers", func(t *testing.T) {
		mailbox := NewUnboundedMailbox[int]()
		producers := 10
		perProducer := 100

		var wg sync.WaitGroup
		wg.Add(producers)
		for p := 0; p < producers; p++ {
			go func() {
				defer wg.Done()
				for i := 0; i < perProducer; i++ {
					_ = mailbox.Enqueue(i)
				}
			}()
		}
		wg.Wait()

		count := 0
		for {
			if _, ok := mailbox.Dequeue(); !ok {
				break
			}
			count++
		}
		assert.Equal(t, producers*perProducer, count)
	})
}

func TestBoundedMailbox(t *testing.T) {
	t.Run("With capacity enforcement", func(t *testing.T) {
		mailbox := NewBoundedMailbox[string](2)
		require.NoError(t, mailbox.Enqueue("a"))
		require.NoError(t, mailbox.Enqueue("b"))
		err := mailbox.Enqueue("c")
		require.ErrorIs(t, err, ErrMailboxFull)

		msg, ok := mailbox.Dequeue()
		require.True(t, ok)
		assert.Equal(t, "a", msg)

		require.NoError(t, mailbox.Enqueue("c"))
		msg, ok = mailbox.Dequeue()
		require.True(t, ok)
		assert.Equal(t, "b", msg)
		msg, ok = mailbox.Dequeue()
		require.True(t, ok)
		assert.Equal(t, "c", msg)
		assert.True(t, mailbox.IsEmpty())
	})
	t.Run("With dispose", func(t *testing.T) {
		mailbox := NewBoundedMailbox[string](2)
		require.NoError(t, mailbox.Enqueue("a"))
		mailbox.Dispose()
		require.Error(t, mailbox.Enqueue("b"))
		_, ok := mailbox.Dequeue()
		assert.False(t, ok)
	})
}
