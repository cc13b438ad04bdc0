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

package validation

import (
	"errors"
	"regexp"
)

// booleanValidator asserts a boolean condition.
type booleanValidator struct {
	isTrue  bool
	message string
}

var _ Validator = (*booleanValidator)(nil)

// NewBooleanValidator creates a validator that fails with the given
// message when the condition does not hold.
func NewBooleanValidator(isTrue bool, message string) Validator {
	return &booleanValidator{isTrue: isTrue, message: message}
}

// Validate implements Validator.
func (v *booleanValidator) Validate() error {
	if !v.isTrue {
		return errors.New(v.message)
	}
	return nil
}

// patternValidator matches a value against a regular expression.
type patternValidator struct {
	pattern   string
	value     string
	customErr error
}

var _ Validator = (*patternValidator)(nil)

// NewPatternValidator creates a validator that fails when the value does
// not match the given pattern. When customErr is set it is returned in
// place of the generic mismatch error.
func NewPatternValidator(pattern, value string, customErr error) Validator {
	return &patternValidator{
		pattern:   pattern,
		value:     value,
		customErr: customErr,
	}
}

// Validate implements Validator.
func (v *patternValidator) Validate() error {
	matched, err := regexp.MatchString(v.pattern, v.value)
	if err != nil {
		return err
	}
	if !matched {
		if v.customErr != nil {
			return v.customErr
		}
		return errors.New("invalid input value " + v.value)
	}
	return nil
}
