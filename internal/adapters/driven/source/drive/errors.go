package drive

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

// wrapError converts a Google API error to a domain error. A 404 maps to
// ErrNotFound; auth, quota and server failures all mean the source cannot
// serve requests right now.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch {
	case gerr.Code == http.StatusNotFound:
		return domain.ErrNotFound
	case gerr.Code == http.StatusUnauthorized,
		gerr.Code == http.StatusForbidden,
		gerr.Code == http.StatusTooManyRequests,
		gerr.Code >= http.StatusInternalServerError:
		return domain.ErrSourceUnavailable
	default:
		return err
	}
}
