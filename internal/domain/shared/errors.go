package shared

// DomainError represents a domain-level error
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

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrMissingHierarchy  = NewDomainError("MISSING_HIERARCHY", "Org hierarchy is not available")
	ErrMissingBudgets    = NewDomainError("MISSING_BUDGETS", "Budget index is not available")
	ErrUnknownStore      = NewDomainError("UNKNOWN_STORE", "Store is not configured in any region")
	ErrUnknownRegion     = NewDomainError("UNKNOWN_REGION", "Region is not configured")
	ErrInvalidPeriod     = NewDomainError("INVALID_PERIOD", "Reporting period is out of range")
	ErrInvalidReportDate = NewDomainError("INVALID_REPORT_DATE", "Report date could not be parsed")
)
