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

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With Info", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Info("test info")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "test info", entry["msg"])
		assert.Equal(t, InfoLevel, logger.LogLevel())
	})
	t.Run("With Debug suppressed at info level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Debug("invisible")
		assert.Empty(t, buffer.String())
	})
	t.Run("With Debugf", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		logger.Debugf("hello %s", "world")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
		assert.Equal(t, "debug", entry["level"])
		assert.Equal(t, "hello world", entry["msg"])
	})
	t.Run("With Warn and Error", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		logger.Warn("careful")
		logger.Error("broken")

		lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "careful")
		assert.Contains(t, lines[1], "broken")
	})
	t.Run("With Panicf", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(PanicLevel, buffer)
		assert.Panics(t, func() { logger.Panicf("panic %s", "now") })
	})
	t.Run("With LogOutput", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		require.Len(t, logger.LogOutput(), 1)
	})
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "WARNING", WarningLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "FATAL", FatalLevel.String())
	assert.Equal(t, "PANIC", PanicLevel.String())
	assert.Equal(t, "UNKNOWN", InvalidLevel.String())
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger
	logger.Info("ignored")
	logger.Debugf("ignored %d", 1)
	assert.Equal(t, InvalidLevel, logger.LogLevel())
	assert.Panics(t, func() { logger.Panic("boom") })
}
