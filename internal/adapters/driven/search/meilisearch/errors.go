package meilisearch

import (
	"errors"
	"fmt"
	"net/http"

	ms "github.com/meilisearch/meilisearch-go"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// wrapError maps an engine error onto the domain taxonomy, keeping the
// original in the chain.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("meilisearch %s: %w: %w", op, classify(err), err)
}

func classify(err error) error {
	var merr *ms.Error
	if !errors.As(err, &merr) {
		return domain.ErrServiceUnavailable
	}
	switch code := merr.StatusCode; {
	case code == 0:
		// No response: connection refused, timeout.
		return domain.ErrServiceUnavailable
	case code == http.StatusNotFound:
		return domain.ErrNotFound
	case code == http.StatusBadRequest:
		return domain.ErrInvalidInput
	case code == http.StatusConflict:
		return domain.ErrConflict
	case code >= http.StatusInternalServerError:
		return domain.ErrServiceUnavailable
	default:
		return domain.ErrBadGateway
	}
}
