package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Siddaarth-Babu/mooc/pkg/api"
	"github.com/Siddaarth-Babu/mooc/pkg/tree"
)

var (
	// ErrUnresolvedFolder means no folder in the cached tree owns the
	// target subfolder. No request is sent.
	ErrUnresolvedFolder = errors.New("could not resolve folder path")

	// ErrBusy means the same operation on the same target is in flight.
	ErrBusy = errors.New("operation already in progress")

	// ErrNoCourse means an operation was invoked without a course id.
	ErrNoCourse = tree.ErrNoCourse
)

// UserMessage renders err for display. Server supplied text is shown
// verbatim; network failures get a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		se *api.StatusError
		te *api.TransportError
		ve *ValidationError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, api.ErrAuthMissing):
		return "You are not logged in. Run `mooc login` first."
	case errors.As(err, &se):
		if se.Message != "" {
			return se.Message
		}
		return fmt.Sprintf("request failed: %d %s", se.Code, http.StatusText(se.Code))
	case errors.As(err, &te):
		return "network error: could not reach the server"
	}
	return err.Error()
}
