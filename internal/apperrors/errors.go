package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found,
// or does not belong to the requesting owner.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent modification was detected; callers may retry.
var ErrConflict = errors.New("conflicting concurrent modification")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")
