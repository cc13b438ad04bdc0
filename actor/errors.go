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
	"errors"
	"fmt"
)

var (
	// ErrInvalidActorSystemName is returned when the actor system name contains invalid characters.
	// A valid name must consist of only alphanumeric characters ([a-zA-Z0-9]), with optional
	// hyphens or underscores that are not leading.
	ErrInvalidActorSystemName = errors.New("invalid ActorSystem name, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")

	// ErrInvalidActorName is returned when an actor name contains characters outside
	// of [a-zA-Z0-9] plus non-leading '-' or '_'.
	ErrInvalidActorName = errors.New("invalid actor name, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")

	// ErrNameRequired is returned when an actor name is required but not provided.
	ErrNameRequired = errors.New("actor name is required")

	// ErrReservedName is returned when a caller uses the reserved '$' prefix in an
	// actor name without going through the anonymous spawn path.
	ErrReservedName = errors.New("actor name is reserved")

	// ErrActorAlreadyExists is returned when trying to create an actor with a name
	// already occupied by a live sibling.
	ErrActorAlreadyExists = errors.New("actor already exists")

	// ErrInvalidInitialBehavior is returned when the supplied behavior cannot legally
	// serve as an actor's starting state.
	ErrInvalidInitialBehavior = errors.New("initial behavior is invalid")

	// ErrNotDirectChild is returned when a stop request targets an actor that is not
	// a direct child of the caller.
	ErrNotDirectChild = errors.New("actor is not a direct child")

	// ErrUndefinedActor is returned when an actor reference is undefined or unknown in the system.
	ErrUndefinedActor = errors.New("actor is not defined")

	// ErrActorSystemNotStarted indicates that the actor system has not been started
	// or has already been terminated.
	ErrActorSystemNotStarted = errors.New("actor system has not started yet")

	// ErrSchedulerNotStarted is returned when attempting to use the scheduler before it has started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrMailboxFull is returned by bounded mailboxes when their capacity is exhausted.
	ErrMailboxFull = errors.New("mailbox is full")
)

// NewErrReservedName formats an ErrReservedName with the given name.
func NewErrReservedName(name string) error {
	return fmt.Errorf("name=(%s) %w", name, ErrReservedName)
}

// NewErrInvalidActorName formats an ErrInvalidActorName with the given name.
func NewErrInvalidActorName(name string) error {
	return fmt.Errorf("name=(%s) %w", name, ErrInvalidActorName)
}

// NewErrActorAlreadyExists formats an ErrActorAlreadyExists for the given actor name.
func NewErrActorAlreadyExists(name string) error {
	return fmt.Errorf("actor=(%s) %w", name, ErrActorAlreadyExists)
}

// NewErrNotDirectChild formats an ErrNotDirectChild for the given actor path.
func NewErrNotDirectChild(path string) error {
	return fmt.Errorf("actor=(%s) %w", path, ErrNotDirectChild)
}
