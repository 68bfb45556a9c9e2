package shared

// DomainError is the error type business rules raise. The code is a
// stable machine-readable identifier the HTTP layer maps onto a status;
// the message is safe to show to API clients.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds a DomainError from a code and client-facing message
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}
