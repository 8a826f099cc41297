package usecase

import (
	"errors"
	"fmt"
	"net/http"

	repo "marketplace/internal/repository"
)

// 呼び出し側がメッセージを読まずに分岐できるようにする種別
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindUpstream   ErrorKind = "upstream"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// conflictは業務ルール違反なので400
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func NewAppError(kind ErrorKind, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func validationError(format string, args ...any) *AppError {
	return NewAppError(KindValidation, fmt.Sprintf(format, args...))
}

func notFoundError(what string) *AppError {
	return NewAppError(KindNotFound, what+" not found")
}

func conflictError(format string, args ...any) *AppError {
	return NewAppError(KindConflict, fmt.Sprintf(format, args...))
}

// ストレージ由来のエラーはメッセージをそのまま返す
func upstreamError(err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: err.Error(), Err: err}
}

// repositoryのエラーをAppErrorに寄せる。whatはnot found時の対象名
func storeError(err error, what string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return &AppError{Kind: KindNotFound, Message: what + " not found", Err: err}
	case errors.Is(err, repo.ErrInvalidReference):
		return &AppError{Kind: KindNotFound, Message: "referenced " + what + " not found", Err: err}
	}
	return upstreamError(err)
}
