package apperr

import (
	"errors"
	"strings"
	"time"
)

// Violation messages for every business rule enforced by the services. The
// wording is part of the API contract surfaced to clients.
const (
	MsgCustomerNotFound    = "The customer does not exist"
	MsgInvalidAmount       = "The amount to transfer must be greater than 0"
	MsgSameAccount         = "The origin account can not be the same that destination account"
	MsgOriginNotFound      = "The origin account does not exist"
	MsgDestinationNotFound = "The destination account does not exist"
	MsgInsufficientFunds   = "The origin account does not have enough funds to do the transfer"
	MsgMissingName         = "The customer name is mandatory"
)

// MsgUnexpected is the only detail ever revealed for non-business failures.
const MsgUnexpected = "Something went wrong, try it again later."

// BusinessError carries one or more rule violations raised while validating a
// request. It is always recoverable by the caller correcting its input and
// never indicates a fault in the service itself.
type BusinessError struct {
	Messages []string
	Date     time.Time
}

// NewBusiness builds a BusinessError from the given violation messages.
func NewBusiness(messages ...string) *BusinessError {
	return &BusinessError{Messages: messages, Date: time.Now().UTC()}
}

func (e *BusinessError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// AsBusiness unwraps err into a BusinessError when it is one.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
