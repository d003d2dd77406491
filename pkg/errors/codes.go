package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
)

// Candidate pipeline error codes.
const (
	ErrCodeSchema         ErrorCode = "CAND_001"
	ErrCodeUnreadyInput   ErrorCode = "CAND_002"
	ErrCodePipeline       ErrorCode = "CAND_003"
	ErrCodeRecordFailure  ErrorCode = "CAND_004"
	ErrCodeExportFailed   ErrorCode = "CAND_005"
	ErrCodeRunNotFound    ErrorCode = "CAND_006"
	ErrCodeInputTooLarge  ErrorCode = "CAND_007"
	ErrCodeInputMalformed ErrorCode = "CAND_008"
)

// Molecule error codes.
const (
	ErrCodeMoleculeInvalidSMILES ErrorCode = "MOL_001"
	ErrCodeDepictionFailed       ErrorCode = "MOL_002"
)

// Short aliases used at call sites.
const (
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeValidation   = ErrCodeValidation
	CodeUnavailable  = ErrCodeServiceUnavailable

	CodeSchema         = ErrCodeSchema
	CodeUnreadyInput   = ErrCodeUnreadyInput
	CodePipeline       = ErrCodePipeline
	CodeRecordFailure  = ErrCodeRecordFailure
	CodeExportFailed   = ErrCodeExportFailed
	CodeRunNotFound    = ErrCodeRunNotFound
	CodeInputTooLarge  = ErrCodeInputTooLarge
	CodeInputMalformed = ErrCodeInputMalformed

	CodeInvalidSMILES   = ErrCodeMoleculeInvalidSMILES
	CodeDepictionFailed = ErrCodeDepictionFailed
)

// ErrorCodeHTTPStatus maps codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeFeatureDisabled:    http.StatusNotImplemented,

	ErrCodeSchema:         http.StatusBadRequest,
	ErrCodeUnreadyInput:   http.StatusUnprocessableEntity,
	ErrCodePipeline:       http.StatusInternalServerError,
	ErrCodeRecordFailure:  http.StatusUnprocessableEntity,
	ErrCodeExportFailed:   http.StatusInternalServerError,
	ErrCodeRunNotFound:    http.StatusNotFound,
	ErrCodeInputTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeInputMalformed: http.StatusBadRequest,

	ErrCodeMoleculeInvalidSMILES: http.StatusUnprocessableEntity,
	ErrCodeDepictionFailed:       http.StatusInternalServerError,
}

// ErrorCodeMessage holds the default message for each code.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeFeatureDisabled:    "feature disabled",

	ErrCodeSchema:         "Input data must contain 'SMILES' and 'Docking_Score' columns.",
	ErrCodeUnreadyInput:   "Please provide input data to start analysis.",
	ErrCodePipeline:       "An error occurred during analysis",
	ErrCodeRecordFailure:  "record could not be evaluated",
	ErrCodeExportFailed:   "failed to export results",
	ErrCodeRunNotFound:    "analysis run not found or expired",
	ErrCodeInputTooLarge:  "input exceeds the configured size limit",
	ErrCodeInputMalformed: "input is not a readable delimited table",

	ErrCodeMoleculeInvalidSMILES: "invalid SMILES",
	ErrCodeDepictionFailed:       "failed to depict structure",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
