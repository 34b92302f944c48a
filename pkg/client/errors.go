/*
 * Copyright 2025 Skye Pulse.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies request failures so callers can decide whether to
// retry, re-authenticate or surface the failure directly.
type ErrorKind string

const (
	// KindTransport is a network-level failure: unreachable host,
	// timeout, connection reset. Retryable.
	KindTransport ErrorKind = "transport"
	// KindStatus is a non-2xx response other than an auth failure.
	// Retryable.
	KindStatus ErrorKind = "status"
	// KindUnauthorized is a 401/419-class response. The session has
	// already been torn down by the time the caller sees it. Never
	// retried.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindParse is a response body that claimed JSON but would not
	// parse, where the caller demanded a typed result.
	KindParse ErrorKind = "parse"
	// KindSchema is a parseable response that does not match the
	// endpoint's declared type.
	KindSchema ErrorKind = "schema"
	// KindValidation is a client-side rejection before any network
	// call. Never retried.
	KindValidation ErrorKind = "validation"
)

// Error is the single failure type surfaced by the client.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("request failed (%s)", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf extracts the error kind, defaulting to transport for errors
// that did not originate in this package.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}

	return KindTransport
}

// IsUnauthorized reports whether err is a session-teardown failure.
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// Retryable reports whether a retry wrapper should attempt err again.
// Auth failures and client-side validation are final; everything else
// might be transient.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindUnauthorized, KindValidation:
		return false
	default:
		return true
	}
}
