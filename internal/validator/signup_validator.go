package validator

import (
	"context"
	"strings"

	"app/internal/repository"
	"app/internal/usecase"
)

// パスワード最低文字数
const minPasswordLength = 8

type signupValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewSignupValidator(users repository.UserRepository) usecase.SignupValidator {
	return &signupValidator{users: users}
}

// サインアップの入力を検証。重複チェックはDBが必要。
func (v *signupValidator) ValidateSignup(ctx context.Context, username string, email string, password string) map[string]string {
	fields := map[string]string{}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		fields["username"] = "this field is required"
	} else if len(username) < 3 {
		fields["username"] = "username must be at least 3 characters"
	} else if u, err := v.users.FindByUsername(ctx, username); err == nil && u != nil {
		fields["username"] = "username already taken"
	}

	if email == "" {
		fields["email"] = "this field is required"
	} else if !isEmailLike(email) {
		fields["email"] = "enter a valid email address"
	} else if u, err := v.users.FindByEmail(ctx, email); err == nil && u != nil {
		fields["email"] = "email already used"
	}

	if password == "" {
		fields["password"] = "this field is required"
	} else if len(password) < minPasswordLength {
		fields["password"] = "password must be at least 8 characters"
	}

	return fields
}
