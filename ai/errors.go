// Copyright 2026 The GenAI-Chatbot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Service error taxonomy. Every remote call failure is classified into exactly
// one of these so callers can pick a retry policy without inspecting
// provider-specific error shapes.
var (
	// ErrRateLimited indicates the service rejected the call due to rate
	// limiting. The caller may retry after a cooldown.
	ErrRateLimited = errors.New("service rate limited")

	// ErrUnavailable indicates a transient service failure.
	// The caller may retry with backoff.
	ErrUnavailable = errors.New("service unavailable")

	// ErrInvalidInput indicates the request itself was rejected. Retrying
	// with the same input will fail again; the caller must not retry.
	ErrInvalidInput = errors.New("invalid input")
)

// IsTransient reports whether err represents a failure worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable)
}

// ClassifyServiceError wraps a raw provider error with the matching sentinel
// from the taxonomy. Context cancellation and deadline errors pass through
// unchanged so callers can distinguish their own timeouts from service
// failures.
//
// The OpenAI-compatible client surfaces HTTP failures as flat error strings,
// so classification matches on status codes and well-known phrases. Anything
// unrecognized is treated as transient: the worst case is a wasted bounded
// retry, whereas misclassifying a transient error as permanent drops work.
func ClassifyServiceError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable) || errors.Is(err, ErrInvalidInput) {
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "quota"):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	case strings.Contains(msg, "400") ||
		strings.Contains(msg, "invalid request") ||
		strings.Contains(msg, "invalid input") ||
		strings.Contains(msg, "context length"):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}
