package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no valid principal was presented.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the principal lacks the role or ownership required
// for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a business-rule violation: a code already consumed or
// expired, an insufficient points balance, and the like. Operations failing
// with ErrConflict leave no partial state behind.
var ErrConflict = errors.New("conflict")

// ErrServiceUnavailable indicates an external collaborator failure or a
// data-integrity impossibility. Like ErrConflict it guarantees that no
// partial mutation was committed.
var ErrServiceUnavailable = errors.New("service unavailable")
