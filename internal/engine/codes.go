package engine

import "fmt"

// Process-wide catalogue of rejection codes. Initialized once, never
// modified at runtime.
const (
	CodeInconsistentVersion     = "0.0"
	CodeOrderAlreadyCompleted   = "O.2"
	CodeOrderCancelled          = "O.3"
	CodeDeliveryAlreadyComplete = "O.4"
	CodeInvalidCartItemSKU      = "O.5"
	CodeInvalidAggregateForID   = "O.6"
	CodeInvalidQuantity         = "O.7"
	CodeUpdatedBeforeCreated    = "O.8"
	CodeInvalidCommandForNew    = "O.9"
)

var (
	// ErrInconsistentVersion rejects mutation of an aggregate that has
	// never been durably created.
	ErrInconsistentVersion = Error{
		Kind:        Validation,
		Code:        CodeInconsistentVersion,
		Description: "Inconsistent command version: 0",
	}

	// ErrInvalidAggregateForID rejects a command whose target id does not
	// match the loaded aggregate.
	ErrInvalidAggregateForID = Error{
		Kind:        Validation,
		Code:        CodeInvalidAggregateForID,
		Description: "Command aggregate id does not match the loaded aggregate.",
	}

	ErrOrderAlreadyCompleted = Error{
		Kind:        Validation,
		Code:        CodeOrderAlreadyCompleted,
		Description: "Order has already been completed.",
	}

	ErrOrderCancelled = Error{
		Kind:        Validation,
		Code:        CodeOrderCancelled,
		Description: "Order has been cancelled.",
	}

	ErrDeliveryAlreadyComplete = Error{
		Kind:        Validation,
		Code:        CodeDeliveryAlreadyComplete,
		Description: "Delivery has already been delivered.",
	}

	ErrInvalidCartItemSKU = Error{
		Kind:        Validation,
		Code:        CodeInvalidCartItemSKU,
		Description: "Sku not found in cart.",
	}

	ErrInvalidQuantity = Error{
		Kind:        Validation,
		Code:        CodeInvalidQuantity,
		Description: "Quantity must be greater than zero.",
	}

	ErrUpdatedBeforeCreated = Error{
		Kind:        Validation,
		Code:        CodeUpdatedBeforeCreated,
		Description: "Updated timestamp precedes the created timestamp.",
	}
)

// InvalidCommandForNew rejects a command variant that does not create an
// aggregate, carrying the offending command's type name.
func InvalidCommandForNew(cmd interface{}) Error {
	return Error{
		Kind:        Unexpected,
		Code:        CodeInvalidCommandForNew,
		Description: fmt.Sprintf("Invalid command %T for a new aggregate.", cmd),
	}
}
