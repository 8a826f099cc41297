package validator

import "errors"

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

// どの項目がどう不正かを持つ。errors.Is(err, ErrInvalidInput) で判定できる
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Message
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

func invalid(field, msg string) error {
	return &FieldError{Field: field, Message: msg}
}
