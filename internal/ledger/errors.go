package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalid is wrapped by every validation error below.
	ErrInvalid = errors.New("invalid record")

	ErrInvalidAmount      = fmt.Errorf("%w: amount must be greater than zero", ErrInvalid)
	ErrInvalidGoal        = fmt.Errorf("%w: goal must be greater than zero", ErrInvalid)
	ErrInvalidMode        = fmt.Errorf("%w: unknown transaction mode", ErrInvalid)
	ErrInvalidMediaType   = fmt.Errorf("%w: unknown media type", ErrInvalid)
	ErrMissingDonor       = fmt.Errorf("%w: donor name is required", ErrInvalid)
	ErrMissingName        = fmt.Errorf("%w: name is required", ErrInvalid)
	ErrMissingDescription = fmt.Errorf("%w: description is required", ErrInvalid)
	ErrMissingEmail       = fmt.Errorf("%w: email is required", ErrInvalid)
	ErrUnknownProject     = fmt.Errorf("%w: unknown project", ErrInvalid)
)
