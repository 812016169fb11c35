// Package service composes store reads into the derived views the API serves:
// edge toggles, feeds, recommendations, engagement counts and channel views.
package service

import (
	"context"
	"errors"

	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/store"
)

// translate maps a store failure onto the domain error taxonomy.
// Missing rows become NotFound and uniqueness failures Conflict; anything
// else means the store could not serve the call and is wrapped Unavailable.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}

	var storeErr *store.Error
	switch {
	case errors.Is(err, store.ErrNotFound):
		if errors.As(err, &storeErr) {
			return domainerrors.NotFound(storeErr.Message).WithCause(err)
		}
		return domainerrors.NotFound(msg).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflict(msg).WithCause(err)
	case errors.Is(err, store.ErrContended):
		return domainerrors.Conflict("too many concurrent changes, try again").WithCause(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return domainerrors.Unavailable(err, msg)
	}
}

// errorCode extracts the domain code for metrics labels.
func errorCode(err error) string {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return string(domainErr.Code)
	}
	return string(domainerrors.CodeInternal)
}
