package registry

import "errors"

var (
	// ErrInvalidArgument occurs when a registry is constructed with the zero
	// address as master, or an operation receives a nil amount.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthorized indicates the caller lacks the role the operation
	// requires: master for owner-set changes, master or owner for transfers.
	ErrUnauthorized = errors.New("caller not authorized")

	// ErrNotOwner indicates the operand account is not a current owner.
	ErrNotOwner = errors.New("account is not an owner")

	// ErrInsufficientShare occurs when the caller's balance cannot cover the
	// requested amount.
	ErrInsufficientShare = errors.New("insufficient share")

	// ErrInvalidReceiver indicates an allocation receiver that is not a
	// current owner. Master identity alone does not qualify.
	ErrInvalidReceiver = errors.New("receiver must be an owner")
)
