package domain

import "errors"

// Domain errors. Callers compare with errors.Is; adapters wrap them with context.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidRecipient    = errors.New("cannot transfer to yourself")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAccountExists       = errors.New("account already exists")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrPaymentIDExhausted  = errors.New("could not allocate a unique payment id")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrForbidden           = errors.New("forbidden")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// Kind groups domain errors by how a caller should react to them
type Kind int

const (
	KindInternal   Kind = iota // Anything unclassified
	KindValidation             // Bad amount, bad input, self transfer, insufficient balance
	KindConflict               // Duplicate email or identifier
	KindNotFound               // Unknown account
	KindAuth                   // Bad credentials, missing or invalid token, wrong owner
	KindStore                  // Connectivity or transport failure of the store
)

// String is the kind name used in log fields
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindStore:
		return "store"
	default:
		return "internal"
	}
}

// KindOf classifies err. Wrapped errors are unwrapped with errors.Is.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrStoreUnavailable):
		return KindStore
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidRecipient),
		errors.Is(err, ErrInsufficientBalance):
		return KindValidation
	case errors.Is(err, ErrAccountExists), errors.Is(err, ErrDuplicateKey):
		return KindConflict
	case errors.Is(err, ErrAccountNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrForbidden):
		return KindAuth
	default:
		return KindInternal
	}
}
