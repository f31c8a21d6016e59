package domain

import (
	"errors"
	"fmt"
)

// ErrServiceNotAlive signals that the external search service could not be
// reached or reported itself unavailable. Callers fall back to native search
// instead of failing the request.
var ErrServiceNotAlive = errors.New("search service is not alive")

// InvalidArgumentError is a caller contract violation, raised before any
// partial work is done.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

// UnsupportedConditionError is raised when a criteria condition has no
// translation rule. Silently dropping a filter would produce wrong results,
// so unknown kinds fail fast.
type UnsupportedConditionError struct {
	Kind string
}

func (e *UnsupportedConditionError) Error() string {
	return fmt.Sprintf("unsupported condition type %s", e.Kind)
}

// MissingBasePriceError is raised when a product defines neither an explicit
// price for a requested customer group nor a fallback price for the default
// group. It fails that single product only.
type MissingBasePriceError struct {
	ProductID int64
	GroupKey  string
}

func (e *MissingBasePriceError) Error() string {
	return fmt.Sprintf("product %d has no price for customer group %q and no %s base price", e.ProductID, e.GroupKey, DefaultCustomerGroupKey)
}

// EmptyValueError is raised when a required feed field resolves to a blank
// value.
type EmptyValueError struct {
	Field string
}

func (e *EmptyValueError) Error() string {
	return fmt.Sprintf("empty value not allowed for field %s", e.Field)
}
