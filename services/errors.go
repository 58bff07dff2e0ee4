package services

import "errors"

var (
	// ErrNotFound means the referenced building/unit/catalog item/order
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden means the record exists but the caller does not own
	// the building chain it hangs off.
	ErrForbidden = errors.New("you do not have permission to access this resource")

	// ErrValidation covers malformed input such as an empty cart or a
	// non-positive quantity.
	ErrValidation = errors.New("validation failed")

	// ErrDependency marks a store/blob collaborator failure. Callers must
	// treat it as "no access", never "open access".
	ErrDependency = errors.New("dependency failed")
)

// PartialWriteError reports that an order header was created, item
// insertion failed, and the compensating delete of the header was issued.
// It surfaces the original item-insertion error as its message, not a
// separate rollback signal.
type PartialWriteError struct {
	Cause error
}

func (e *PartialWriteError) Error() string {
	return e.Cause.Error()
}

func (e *PartialWriteError) Unwrap() error {
	return e.Cause
}
