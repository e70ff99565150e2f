package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/moneysplits/internal/models"
)

// toConnectError maps domain errors onto Connect status codes.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case models.IsNotFound(err):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrGroupExists), errors.Is(err, models.ErrMemberExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// requireID rejects an empty identifier before touching storage.
func requireID(field, value string) error {
	if value == "" {
		return connect.NewError(connect.CodeInvalidArgument, models.NewValidationError(field, "is required"))
	}
	return nil
}
