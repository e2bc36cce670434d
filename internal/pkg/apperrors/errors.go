package apperrors

import (
	"errors"
	"fmt"
)

// Code classifies an application error. Expected conditions carry a specific
// code the caller can branch on; unexpected ones surface generically.
type Code string

const (
	CodeInvalidInput         Code = "INVALID_INPUT"
	CodeNotFound             Code = "NOT_FOUND"
	CodeExpired              Code = "EXPIRED"
	CodeBudgetExceeded       Code = "BUDGET_EXCEEDED"
	CodeRateLimited          Code = "RATE_LIMITED"
	CodeProviderUnconfigured Code = "PROVIDER_UNCONFIGURED"
	CodeProviderError        Code = "PROVIDER_ERROR"
	CodeIngestion            Code = "INGESTION_ERROR"
	CodePersistence          Code = "PERSISTENCE_ERROR"
)

type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Expired(message string) *AppError {
	return New(CodeExpired, message)
}

func BudgetExceeded(remaining int) *AppError {
	return &AppError{Code: CodeBudgetExceeded, Message: fmt.Sprintf("token budget exhausted (remaining %d)", remaining)}
}

func RateLimited(message string) *AppError {
	return New(CodeRateLimited, message)
}

func ProviderUnconfigured(provider string) *AppError {
	return &AppError{Code: CodeProviderUnconfigured, Message: fmt.Sprintf("no credential configured for %s", provider)}
}

func ProviderError(status int, body string) *AppError {
	return &AppError{Code: CodeProviderError, Message: fmt.Sprintf("provider returned status %d: %s", status, body)}
}

func Ingestion(message string, err error) *AppError {
	return Wrap(CodeIngestion, message, err)
}

func Persistence(err error) *AppError {
	return Wrap(CodePersistence, "store operation failed", err)
}

// CodeOf extracts the code of an error, or "" when it is not an AppError.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// Ingestion sub-conditions. These stay AppErrors with CodeIngestion so the
// HTTP layer treats them uniformly, but callers can still tell them apart.
var (
	ErrUnsupportedFormat      = New(CodeIngestion, "unsupported file format")
	ErrEmptyContent           = New(CodeIngestion, "document contains no extractable text")
	ErrEmbeddingCountMismatch = New(CodeIngestion, "embedding count does not match chunk count")
	ErrLimitExceeded          = New(CodeIngestion, "knowledge base limit exceeded")
)
