package youtube

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// Quota reasons returned with 403 responses.
var quotaReasons = map[string]bool{
	"quotaExceeded":         true,
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"dailyLimitExceeded":    true,
}

// WrapError maps a Google API error onto the domain error taxonomy.
// The original error stays in the chain for logging.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("youtube: %w", err)
	}

	var sentinel error
	switch {
	case gerr.Code == http.StatusBadRequest:
		sentinel = domain.ErrInvalidInput
	case gerr.Code == http.StatusUnauthorized:
		sentinel = domain.ErrAuthRequired
	case gerr.Code == http.StatusForbidden && isQuota(gerr):
		sentinel = domain.ErrRateLimited
	case gerr.Code == http.StatusForbidden:
		sentinel = domain.ErrAuthRequired
	case gerr.Code == http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case gerr.Code == http.StatusTooManyRequests:
		sentinel = domain.ErrRateLimited
	case gerr.Code >= http.StatusInternalServerError:
		sentinel = domain.ErrServiceUnavailable
	default:
		return fmt.Errorf("youtube: %w", err)
	}
	return fmt.Errorf("youtube: %w: %w", sentinel, err)
}

func isQuota(gerr *googleapi.Error) bool {
	for _, item := range gerr.Errors {
		if quotaReasons[item.Reason] {
			return true
		}
	}
	return false
}

// RetryAfter returns the delay requested by a rate limited response,
// or zero when none was given.
func RetryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
