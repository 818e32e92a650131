package exchange

import "errors"

var (
	ErrUnknownRequestType = errors.New("unknown exchange request type")
	ErrMissingSwapShift   = errors.New("swap request is missing the swap shift id")
)
