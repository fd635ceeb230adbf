package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound        = ErrorKind("Not Found")
	InternalError   = ErrorKind("Internal Error")
	InvalidArgument = ErrorKind("Invalid Argument")
	Unsupported     = ErrorKind("Unsupported")

	// access control
	NotController             = ErrorKind("caller is not the controller")
	CallerNotOwnerNorApproved = ErrorKind("caller is not owner nor approved")

	// admission control
	SupplyCapExceeded = ErrorKind("supply cap exceeded")
	PaymentTooLow     = ErrorKind("payment below mint price")
	CooldownActive    = ErrorKind("mint cooldown active")

	// input validation
	MintToZero           = ErrorKind("mint to the zero address")
	TransferToZero       = ErrorKind("transfer to the zero address")
	ApproveToCaller      = ErrorKind("operator approval for caller itself")
	InvalidToken         = ErrorKind("invalid token id")
	LayerIndexOutOfRange = ErrorKind("layer count out of range")
	RoyaltyBpsTooHigh    = ErrorKind("royalty basis points too high")
	ZeroAddress          = ErrorKind("zero address")

	// ownership consistency
	TransferFromWrongOwner = ErrorKind("transfer from wrong owner")

	// concurrency
	Reentrancy = ErrorKind("reentrant call")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
