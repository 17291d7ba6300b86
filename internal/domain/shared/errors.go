package shared

// DomainError represents a domain-level error with a stable machine code.
// Callers branch on the code (or on package-level sentinel errors) rather
// than on error types.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Services wrap these around the package-specific
// sentinel so callers can branch on either: the code travels to the API
// boundary, the sentinel stays testable with errors.Is.
var (
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrDataIntegrity = NewDomainError("DATA_INTEGRITY", "Stored record is in an inconsistent state")
)
