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
	"go.uber.org/atomic"

	"github.com/tochemey/loom/eventstream"
	"github.com/tochemey/loom/internal/collection"
)

// deadLetterSinkName is the name of the dead-letter singleton hosted on
// the system tree.
const deadLetterSinkName = "deadletters"

// deadLetterSink is the runtime actor absorbing undeliverable messages.
// Every Deadletter it receives is counted, logged at debug level and
// republished on the event stream's dead-letters topic for subscribers.
type deadLetterSink struct {
	eventsStream eventstream.Stream
	counter      *atomic.Int64
	perReceiver  *collection.Map[string, *atomic.Int64]
}

// newDeadLetterSink creates the sink state shared with the system.
func newDeadLetterSink(eventsStream eventstream.Stream) *deadLetterSink {
	return &deadLetterSink{
		eventsStream: eventsStream,
		counter:      atomic.NewInt64(0),
		perReceiver:  collection.NewMap[string, *atomic.Int64](),
	}
}

// Receive is the sink's behavior. It only understands Deadletter events;
// anything else is ignored.
func (x *deadLetterSink) Receive(ctx *ReceiveContext[any]) {
	deadletter, ok := ctx.Message().(*Deadletter)
	if !ok {
		return
	}
	x.record(deadletter)
	ctx.Logger().Debugf("deadletter: receiver=(%s) reason=(%s)", deadletter.Receiver(), deadletter.Reason())
}

// record counts the deadletter and republishes it on the event stream.
// Called directly by the system when the sink itself is shutting down,
// so late undeliverable messages are still observable.
func (x *deadLetterSink) record(deadletter *Deadletter) {
	x.counter.Inc()
	counter, _ := x.perReceiver.GetOrSet(deadletter.Receiver(), atomic.NewInt64(0))
	counter.Inc()
	x.eventsStream.Publish(DeadlettersTopic, deadletter)
}

// Count returns the total number of dead letters seen by the sink.
func (x *deadLetterSink) Count() int64 {
	return x.counter.Load()
}

// CountFor returns the number of dead letters recorded for the given
// receiver path string.
func (x *deadLetterSink) CountFor(receiver string) int64 {
	counter, ok := x.perReceiver.Get(receiver)
	if !ok {
		return 0
	}
	return counter.Load()
}
