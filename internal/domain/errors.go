package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the auth view and the study helper.
var (
	ErrMissingInput            = errors.New("email and password are required")
	ErrProviderOperationFailed = errors.New("identity provider operation failed")
	ErrSubmissionInFlight      = errors.New("a submission is already in progress")
	ErrUnknownPage             = errors.New("unknown page")
	ErrNotSignedIn             = errors.New("no user is signed in")
)

// ProviderError carries the human-readable message returned by the identity
// provider. It matches ErrProviderOperationFailed under errors.Is.
type ProviderError struct {
	Code    string
	Message string
	Cause   error
}

// NewProviderError builds an error in the provider's "Firebase: Error (auth/<code>)." style.
func NewProviderError(code string, cause error) *ProviderError {
	return &ProviderError{
		Code:    code,
		Message: fmt.Sprintf("Firebase: Error (auth/%s).", code),
		Cause:   cause,
	}
}

// NewProviderErrorWithDetail is like NewProviderError but carries a sentence
// ahead of the code, e.g. "Firebase: Password should be at least 6 characters (auth/weak-password)."
func NewProviderErrorWithDetail(code, detail string) *ProviderError {
	return &ProviderError{
		Code:    code,
		Message: fmt.Sprintf("Firebase: %s (auth/%s).", detail, code),
	}
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderOperationFailed
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ProviderMessage extracts the user-facing message from a provider failure.
// Errors that did not come from the provider are reported by their text.
func ProviderMessage(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}
