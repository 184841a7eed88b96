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


package ingest

import (
	"context"
	"time"

	"github.com/malisevdinoglu/GenAI-Chatbot/ai"
)

// retryTransient runs fn up to maxAttempts times, sleeping a fixed cooldown
// between attempts. Only transient service errors are retried; anything else
// aborts immediately with the attempt's error. The cooldown is flat, not
// exponential; upstream batch pacing already bounds the request rate.
func retryTransient(ctx context.Context, maxAttempts int, cooldown time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !ai.IsTransient(lastErr) {
			return lastErr
		}
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cooldown):
		}
	}
	return lastErr
}
