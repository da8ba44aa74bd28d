package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral     ErrorCode = "VALIDATION_001"
	ValidationInvalidDate ErrorCode = "VALIDATION_002"
	ValidationOutOfRange  ErrorCode = "VALIDATION_003"
)

// Date-range error codes (RANGE_*)
const (
	RangeStartAfterEnd ErrorCode = "RANGE_001"
)

// Import error codes (IMPORT_*)
const (
	ImportMissingFile ErrorCode = "IMPORT_001"
	ImportUnreadable  ErrorCode = "IMPORT_002"
	ImportEmptyFile   ErrorCode = "IMPORT_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:     "Validation failed",
	ValidationInvalidDate: "Invalid date format, expected YYYY-MM-DD",
	ValidationOutOfRange:  "Field value is out of allowed range",

	// Date-range errors
	RangeStartAfterEnd: "Start date must not be after end date",

	// Import errors
	ImportMissingFile: "A CSV file is required in the 'file' form field",
	ImportUnreadable:  "The uploaded file could not be read",
	ImportEmptyFile:   "The uploaded file contains no rows",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemUnexpectedError:    "An unexpected error occurred",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
