// Copyright 2025 walteh LLC
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

package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v60/github"
	"github.com/walteh/syncy/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

// classify wraps a failed API call in a remote.ProviderError
func classify(ctx context.Context, op string, resp *github.Response, err error) error {
	perr := &remote.ProviderError{Op: op, Kind: remote.KindUnknown, Err: err}

	if ctx.Err() != nil {
		perr.Err = errors.Errorf("context error: %w", ctx.Err())
		return perr
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		perr.Kind = remote.KindRateLimited
		perr.Retryable = true
		return perr
	case resp == nil || resp.Response == nil:
		return perr
	}

	switch code := resp.StatusCode; {
	case code == http.StatusNotFound:
		perr.Kind = remote.KindNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		perr.Kind = remote.KindUnauthorized
	case code == http.StatusConflict, code == http.StatusUnprocessableEntity:
		perr.Kind = remote.KindConflict
	case code >= http.StatusInternalServerError:
		perr.Kind = remote.KindUnavailable
		perr.Retryable = true
	}
	return perr
}
