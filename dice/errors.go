package dice

import "fmt"

// ErrorCode numbers program errors in the custom error range of the host.
type ErrorCode uint32

const (
	CodeRollTooLow ErrorCode = 6000 + iota
	CodeRollTooHigh
	CodeBetTooSmall
	CodeBetTooLarge
	CodeInsufficientFunds
	CodeTransferFailed
	CodeAddressDerivationFailed
	CodeAccountDiscriminatorMismatch
	CodeBetNotFound
	CodeInvalidSignature
	CodeSignatureReplayed
)

// Error is a program error. Errors with the same Code match under errors.Is.
type Error struct {
	Code ErrorCode
	Name string
	Msg  string
	Err  error
}

var (
	ErrRollTooLow                   = &Error{Code: CodeRollTooLow, Name: "RollTooLow", Msg: "roll must be greater than 2"}
	ErrRollTooHigh                  = &Error{Code: CodeRollTooHigh, Name: "RollTooHigh", Msg: "roll must be less than 96"}
	ErrBetTooSmall                  = &Error{Code: CodeBetTooSmall, Name: "BetTooSmall", Msg: "bet amount is below the minimum"}
	ErrBetTooLarge                  = &Error{Code: CodeBetTooLarge, Name: "BetTooLarge", Msg: "bet amount must be less than the vault balance"}
	ErrInsufficientFunds            = &Error{Code: CodeInsufficientFunds, Name: "InsufficientFunds", Msg: "player cannot cover the bet"}
	ErrTransferFailed               = &Error{Code: CodeTransferFailed, Name: "TransferFailed", Msg: "transfer to the vault failed"}
	ErrAddressDerivationFailed      = &Error{Code: CodeAddressDerivationFailed, Name: "AddressDerivationFailed", Msg: "no valid program address for seeds"}
	ErrAccountDiscriminatorMismatch = &Error{Code: CodeAccountDiscriminatorMismatch, Name: "AccountDiscriminatorMismatch", Msg: "account data is not a bet"}
	ErrBetNotFound                  = &Error{Code: CodeBetNotFound, Name: "BetNotFound", Msg: "no bet at the derived address"}
	ErrInvalidSignature             = &Error{Code: CodeInvalidSignature, Name: "InvalidSignature", Msg: "signature does not match player"}
	ErrSignatureReplayed            = &Error{Code: CodeSignatureReplayed, Name: "SignatureReplayed", Msg: "signature was already used"}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Validation reports whether the error is a rule failure the caller can
// correct by changing the request.
func (e *Error) Validation() bool {
	switch e.Code {
	case CodeRollTooLow, CodeRollTooHigh, CodeBetTooSmall, CodeBetTooLarge, CodeInsufficientFunds:
		return true
	}
	return false
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	out := *e
	out.Err = cause
	return &out
}
