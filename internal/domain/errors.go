package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every error that rejects a candidate pool
var ErrInvalidInput = errors.New("invalid input")

// Matchmaking input errors
var (
	ErrEmptyPool          = fmt.Errorf("%w: candidate pool is empty", ErrInvalidInput)
	ErrPlayerWithoutRoles = fmt.Errorf("%w: player has no roles", ErrInvalidInput)
	ErrDuplicatePlayer    = fmt.Errorf("%w: player id appears more than once", ErrInvalidInput)
	ErrInvalidRoleOrder   = fmt.Errorf("%w: role order must list known roles at most once", ErrInvalidInput)
)

// Fixture errors
var (
	ErrFixtureNotFound = errors.New("fixture not found")
	ErrInvalidFixture  = errors.New("invalid fixture name")
)
