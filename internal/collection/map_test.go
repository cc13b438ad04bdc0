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

package collection

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("With Set/Get/Delete", func(t *testing.T) {
		m := NewMap[string, int]()
		m.Set("a", 1)
		m.Set("b", 2)

		val, ok := m.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, val)

		m.Set("a", 3)
		val, ok = m.Get("a")
		require.True(t, ok)
		assert.Equal(t, 3, val)

		m.Delete("a")
		_, ok = m.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 1, m.Len())
	})
	t.Run("With Keys/Values/Range", func(t *testing.T) {
		m := NewMap[string, int]()
		for i := 0; i < 10; i++ {
			m.Set(fmt.Sprintf("key-%d", i), i)
		}
		assert.Len(t, m.Keys(), 10)
		assert.Len(t, m.Values(), 10)

		sum := 0
		m.Range(func(_ string, v int) { sum += v })
		assert.Equal(t, 45, sum)

		m.Reset()
		assert.Zero(t, m.Len())
	})
	t.Run("With concurrent access", func(t *testing.T) {
		m := NewMap[int, int]()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				m.Set(i, i)
				m.Get(i)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 50, m.Len())
	})
}

func TestShardedMap(t *testing.T) {
	t.Run("With Store/Load/Delete", func(t *testing.T) {
		m := NewShardedMap[int]()
		m.Store("a", 1)
		val, ok := m.Load("a")
		require.True(t, ok)
		assert.Equal(t, 1, val)

		m.Delete("a")
		_, ok = m.Load("a")
		assert.False(t, ok)
	})
	t.Run("With DeleteIf", func(t *testing.T) {
		m := NewShardedMap[int]()
		m.Store("a", 1)
		assert.False(t, m.DeleteIf("a", func(v int) bool { return v == 2 }))
		assert.True(t, m.DeleteIf("a", func(v int) bool { return v == 1 }))
		assert.False(t, m.DeleteIf("a", func(int) bool { return true }))
	})
	t.Run("With concurrent access", func(t *testing.T) {
		m := NewShardedMap[int]()
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				m.Store(fmt.Sprintf("key-%d", i), i)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 100, m.Len())

		count := 0
		m.Range(func(string, int) { count++ })
		assert.Equal(t, 100, count)

		m.Reset()
		assert.Zero(t, m.Len())
	})
}
