package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// ハッシュと平文の突き合わせ。
type PasswordVerifier interface {
	Verify(hash string, plain string) bool
}

// アクセストークンの発行の約束。
type TokenIssuer interface {
	Issue(userID int64, isStaff bool, tokenVersion int, now time.Time) (string, time.Time, error)
}

// サインアップ入力の検証の約束。
type SignupValidator interface {
	ValidateSignup(ctx context.Context, username string, email string, password string) map[string]string
}

// AuthUsecase は会員登録・ログイン・ログアウト。
type AuthUsecase struct {
	userRepo  repo.UserRepository
	validator SignupValidator
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    TokenIssuer
}

func NewAuthUsecase(
	userRepo repo.UserRepository,
	validator SignupValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer TokenIssuer,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
	}
}

type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

type AuthOutput struct {
	User        UserDTO   `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Signup は会員登録。成功したらそのままログイン状態のトークンを返す。
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (AuthOutput, error) {
	if fields := u.validator.ValidateSignup(ctx, in.Username, in.Email, in.Password); len(fields) > 0 {
		return AuthOutput{}, NewValidationError(http.StatusBadRequest, "validation error", fields)
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hashed,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		// uniqueIndexとの競合はここに落ちる
		return AuthOutput{}, NewHTTPError(http.StatusConflict, "username or email already used")
	}

	return u.issueFor(user)
}

// Login はemail+passwordの認証。
// どちらが間違っていても同じメッセージを返す。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err == repo.ErrUserNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.verifier.Verify(user.PasswordHash, in.Password) {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	return u.issueFor(user)
}

// Logout はトークンバージョンを上げて発行済みトークンを無効にする。
func (u *AuthUsecase) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) issueFor(user *model.User) (AuthOutput, error) {
	token, expiresAt, err := u.issuer.Issue(user.ID, user.IsStaff, user.TokenVersion, time.Now())
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthOutput{
		User: UserDTO{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			IsStaff:  user.IsStaff,
		},
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
