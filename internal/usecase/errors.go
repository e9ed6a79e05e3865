package usecase

import (
	"errors"
	"fmt"
)

// HTTPErrorはusecaseからhandlerへ返すエラー。
// Fieldsはフォーム検証のフィールド別メッセージ（無ければnil）。
type HTTPError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// フォーム検証失敗用。フィールド別のメッセージを運ぶ。
func NewValidationError(status int, message string, fields map[string]string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Fields:  fields,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
