package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeValidation is used when domain field validation fails
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeInsufficientBalance is used when partner or investor capital is insufficient
	ErrCodeInsufficientBalance = "ERR_INSUFFICIENT_BALANCE"
	// ErrCodeResourceInUse is used when a delete is blocked by existing references
	ErrCodeResourceInUse = "ERR_RESOURCE_IN_USE"
	// ErrCodeResourceBusy is used when a row lock could not be obtained in time
	ErrCodeResourceBusy = "ERR_RESOURCE_BUSY"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeInsufficientBalance: http.StatusUnprocessableEntity,
	ErrCodeResourceInUse:       http.StatusConflict,
	ErrCodeResourceBusy:        http.StatusTooManyRequests,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to the wire format.
// Every code a domain package can emit has an entry here.
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INSUFFICIENT_BALANCE": ErrCodeInsufficientBalance,
	"RESOURCE_BUSY":        ErrCodeResourceBusy,

	// Duplicates on unique fields
	"DUPLICATE_IMEI":        ErrCodeAlreadyExists,
	"DUPLICATE_NATIONAL_ID": ErrCodeAlreadyExists,

	// Deletes blocked by existing references
	"PHONE_IN_USE":    ErrCodeResourceInUse,
	"CUSTOMER_IN_USE": ErrCodeResourceInUse,

	// State rule violations
	"PHONE_NOT_AVAILABLE": ErrCodeInvalidState,
	"NO_PARTNERS":         ErrCodeInvalidState,

	// Invalid field values surface as validation failures
	"INVALID_AMOUNT":           ErrCodeValidation,
	"INVALID_BRAND":            ErrCodeValidation,
	"INVALID_CALCULATION_TYPE": ErrCodeValidation,
	"INVALID_CUSTOMER":         ErrCodeValidation,
	"INVALID_DOWN_PAYMENT":     ErrCodeValidation,
	"INVALID_EXPENSE_TYPE":     ErrCodeValidation,
	"INVALID_IMEI":             ErrCodeValidation,
	"INVALID_INVESTOR":         ErrCodeValidation,
	"INVALID_MODEL":            ErrCodeValidation,
	"INVALID_MONTHS":           ErrCodeValidation,
	"INVALID_NAME":             ErrCodeValidation,
	"INVALID_NATIONAL_ID":      ErrCodeValidation,
	"INVALID_PARTNER":          ErrCodeValidation,
	"INVALID_PHONE":            ErrCodeValidation,
	"INVALID_PHONE_NUMBER":     ErrCodeValidation,
	"INVALID_PRICE":            ErrCodeValidation,
	"INVALID_PROFIT_TYPE":      ErrCodeValidation,
	"INVALID_RATE":             ErrCodeValidation,
	"INVALID_SALE_DATE":        ErrCodeValidation,
	"INVALID_SHARE":            ErrCodeValidation,
	"INVALID_STATUS":           ErrCodeValidation,
	"INVALID_TRANSACTION_TYPE": ErrCodeValidation,
}

// NormalizeErrorCode converts a legacy error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
