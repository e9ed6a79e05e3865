package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	panic("unexpected call")
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *AuthUserRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	panic("unexpected call")
}

func (m *AuthUserRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type signupValidatorStub struct {
	fields map[string]string
}

func (s *signupValidatorStub) ValidateSignup(ctx context.Context, username string, email string, password string) map[string]string {
	return s.fields
}

type hasherStub struct{}

func (hasherStub) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type verifierStub struct {
	ok bool
}

func (v verifierStub) Verify(hash string, plain string) bool { return v.ok }

type issuerStub struct{}

func (issuerStub) Issue(userID int64, isStaff bool, tokenVersion int, now time.Time) (string, time.Time, error) {
	return "token", now.Add(15 * time.Minute), nil
}

func newAuthUsecase(users *AuthUserRepoMock, fields map[string]string, verifyOK bool) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(users, &signupValidatorStub{fields: fields}, hasherStub{}, verifierStub{ok: verifyOK}, issuerStub{})
}

func TestAuthUsecase_Signup_Success(t *testing.T) {
	ctx := context.Background()
	users := new(AuthUserRepoMock)
	uc := newAuthUsecase(users, nil, true)

	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Signup(ctx, usecase.SignupInput{Username: "taro", Email: "taro@example.com", Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, "taro", out.User.Username)
	assert.False(t, out.User.IsStaff)
	assert.Equal(t, "token", out.AccessToken)
}

func TestAuthUsecase_Signup_ValidationError(t *testing.T) {
	ctx := context.Background()
	users := new(AuthUserRepoMock)
	uc := newAuthUsecase(users, map[string]string{"password": "Password must be at least 8 characters."}, true)

	_, err := uc.Signup(ctx, usecase.SignupInput{Username: "taro", Email: "taro@example.com", Password: "short"})

	httpErr, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "Password must be at least 8 characters.", httpErr.Fields["password"])

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// uniqueIndex競合は409
func TestAuthUsecase_Signup_Conflict(t *testing.T) {
	ctx := context.Background()
	users := new(AuthUserRepoMock)
	uc := newAuthUsecase(users, nil, true)

	users.On("Create", mock.Anything, mock.Anything).Return(errors.New("duplicate key value"))

	_, err := uc.Signup(ctx, usecase.SignupInput{Username: "taro", Email: "taro@example.com", Password: "password123"})

	httpErr, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, httpErr.Status)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	ctx := context.Background()
	users := new(AuthUserRepoMock)
	uc := newAuthUsecase(users, nil, true)

	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(&model.User{
		ID: 1, Username: "taro", Email: "taro@example.com", PasswordHash: "hashed", IsStaff: true,
	}, nil)

	out, err := uc.Login(ctx, usecase.LoginInput{Email: "taro@example.com", Password: "password123"})
	assert.NoError(t, err)
	assert.True(t, out.User.IsStaff)
	assert.Equal(t, "token", out.AccessToken)
}

// emailが無くてもパスワードが違っても同じメッセージ
func TestAuthUsecase_Login_SameMessageForBothFailures(t *testing.T) {
	ctx := context.Background()

	users := new(AuthUserRepoMock)
	uc := newAuthUsecase(users, nil, true)
	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repo.ErrUserNotFound)

	_, errUnknown := uc.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "password123"})

	users2 := new(AuthUserRepoMock)
	uc2 := newAuthUsecase(users2, nil, false)
	users2.On("FindByEmail", mock.Anything, "taro@example.com").Return(&model.User{ID: 1, PasswordHash: "hashed"}, nil)

	_, errWrongPassword := uc2.Login(ctx, usecase.LoginInput{Email: "taro@example.com", Password: "wrong"})

	assert.Error(t, errUnknown)
	assert.Error(t, errWrongPassword)
	assert.Equal(t, errUnknown.Error(), errWrongPassword.Error())
}

func TestAuthUsecase_Login_MissingFields(t *testing.T) {
	ctx := context.Background()
	users := new(AuthUserRepoMock)
	uc := newAuthUsecase(users, nil, true)

	_, err := uc.Login(ctx, usecase.LoginInput{Email: "", Password: ""})

	httpErr, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, httpErr.Status)
}

func TestAuthUsecase_Logout_BumpsTokenVersion(t *testing.T) {
	ctx := context.Background()
	users := new(AuthUserRepoMock)
	uc := newAuthUsecase(users, nil, true)

	users.On("IncrementTokenVersion", mock.Anything, int64(1)).Return(nil)

	err := uc.Logout(ctx, 1)
	assert.NoError(t, err)

	users.AssertExpectations(t)
}

func TestBcryptHasherAndVerifier_RoundTrip(t *testing.T) {
	hasher := usecase.NewBcryptPasswordHasher(4)
	verifier := usecase.NewBcryptPasswordVerifier()

	hash, err := hasher.Hash("password123")
	assert.NoError(t, err)
	assert.True(t, verifier.Verify(hash, "password123"))
	assert.False(t, verifier.Verify(hash, "password124"))
}
