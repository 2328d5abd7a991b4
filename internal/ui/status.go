package ui

import (
	"errors"

	"github.com/five82/showcase/internal/backend"
	"github.com/five82/showcase/internal/catalog"
)

// describeError turns a store error into a line fit for the status bar or
// a form.
func describeError(err error) string {
	if err == nil {
		return ""
	}
	var (
		ve *catalog.ValidationError
		nf *catalog.NotFoundError
		ue *catalog.UpstreamError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &nf):
		return nf.Error() + "; press r to reload"
	case errors.As(err, &ue):
		var apiErr *backend.APIError
		if errors.As(ue, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
		if ue.Status == 0 {
			return "service unreachable"
		}
		return ue.Error()
	}
	return err.Error()
}
