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
	"strings"

	"github.com/google/uuid"

	"github.com/tochemey/loom/internal/validation"
)

const (
	// pathSeparator separates the segments of an actor path.
	pathSeparator = "/"
	// reservedSentinel is the leading character reserved for
	// system-generated (anonymous) actor names.
	reservedSentinel = "$"
)

// namePattern restricts actor name segments to word characters plus
// non-leading '-' or '_'.
const namePattern = `^[a-zA-Z0-9][a-zA-Z0-9-_]*$`

// opaqueID is the fixed incarnation identifier used by well-known
// singleton actors (guardians, dead letters) whose identity comparison
// by path alone suffices.
var opaqueID = uuid.Nil

// Path is the unique, immutable address of an actor within an actor
// system. A Path carries its parent chain, its own name segment and an
// incarnation identifier distinguishing successive actors occupying the
// same name over time.
type Path struct {
	parent    *Path
	name      string
	id        uuid.UUID
	cachedStr string
}

// newRootPath creates a top-level Path with a fresh incarnation id.
func newRootPath(name string) *Path {
	return &Path{
		name:      name,
		id:        uuid.New(),
		cachedStr: pathSeparator + name,
	}
}

// childPath creates a Path one level below the current one with a fresh
// incarnation id. Each call produces a new incarnation even when the
// name is reused.
func (p *Path) childPath(name string) *Path {
	return &Path{
		parent:    p,
		name:      name,
		id:        uuid.New(),
		cachedStr: p.cachedStr + pathSeparator + name,
	}
}

// withOpaqueID returns a copy of the Path whose incarnation id is the
// opaque sentinel. Reserved for singleton system actors.
func (p *Path) withOpaqueID() *Path {
	clone := *p
	clone.id = opaqueID
	return &clone
}

// Parent returns the parent Path or nil for a top-level path.
func (p *Path) Parent() *Path {
	return p.parent
}

// Name returns the last segment of the Path.
func (p *Path) Name() string {
	return p.name
}

// ID returns the incarnation identifier of the actor this Path refers to.
func (p *Path) ID() uuid.UUID {
	return p.id
}

// String returns the string representation of the Path, e.g. /user/worker.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	return p.cachedStr
}

// Equals compares two paths by their segments only. Two incarnations of
// the same name are Equals but not SameAs.
func (p *Path) Equals(other *Path) bool {
	if p == nil || other == nil {
		return false
	}
	return p.cachedStr == other.cachedStr
}

// SameAs compares two paths by segments and incarnation identifier.
// This is the identity check used for exact removals: a stale reference
// from a previous incarnation is never SameAs the current one.
func (p *Path) SameAs(other *Path) bool {
	return p.Equals(other) && p.id == other.id
}

// validateActorName checks the given actor name. The reserved sentinel
// prefix is only allowed on the privileged (system/anonymous) spawn path.
func validateActorName(name string, privileged bool) error {
	if name == "" {
		return ErrNameRequired
	}
	if strings.HasPrefix(name, reservedSentinel) {
		if !privileged {
			return NewErrReservedName(name)
		}
		return nil
	}
	return validation.
		New(validation.FailFast()).
		AddValidator(validation.NewPatternValidator(namePattern, name, NewErrInvalidActorName(name))).
		Validate()
}
