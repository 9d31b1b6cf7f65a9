package resource

import (
	"errors"

	"horseadmin/domain/shared"
)

// Operation names carried by DomainError.Op.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

var opVerbs = map[string]string{
	OpList:   "fetching",
	OpCreate: "creating",
	OpUpdate: "updating",
	OpDelete: "deleting",
}

// NewFetchError wraps a failed list call.
func NewFetchError(collection string, cause error) error {
	return shared.NewError(shared.ErrFetch, collection, OpList, "Error fetching "+collection, cause, 1)
}

// NewWriteError wraps a failed create, update or delete.
func NewWriteError(entity, op string, cause error) error {
	return shared.NewError(shared.ErrWrite, entity, op, "Error "+opVerbs[op]+" "+entity, cause, 1)
}

// NewValidationError reports form input that cannot be coerced into a payload.
func NewValidationError(entity, field, reason string, cause error) error {
	e := shared.NewError(shared.ErrValidation, entity, "", field+" "+reason, cause, 1)
	e.Field = field
	return e
}

// IsFetchError reports whether err is a list failure.
func IsFetchError(err error) bool { return errors.Is(err, shared.ErrFetch) }

// IsWriteError reports whether err is a mutation failure.
func IsWriteError(err error) bool { return errors.Is(err, shared.ErrWrite) }

// IsValidationError reports whether err is a payload construction failure.
func IsValidationError(err error) bool { return errors.Is(err, shared.ErrValidation) }

// FieldOf returns the offending field of a validation error, or "".
func FieldOf(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}
