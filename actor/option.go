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
	"time"

	"github.com/tochemey/loom/log"
)

// Option is the interface that applies a configuration option to the
// actor system.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(system *ActorSystem)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(system *ActorSystem)

// Apply applies the options to the actor system.
func (f OptionFunc) Apply(system *ActorSystem) {
	f(system)
}

// WithLogger sets the actor system custom logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.logger = logger
	})
}

// WithWorkerPoolSize sets the number of dispatcher workers shared by all
// actors in the system. The default is the number of available
// processors.
func WithWorkerPoolSize(size int) Option {
	return OptionFunc(func(system *ActorSystem) {
		if size > 0 {
			system.workerPoolSize = size
		}
	})
}

// WithShutdownTimeout sets how long Terminate waits for the actor tree
// to drain before giving up.
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(system *ActorSystem) {
		if timeout > 0 {
			system.shutdownTimeout = timeout
		}
	})
}
