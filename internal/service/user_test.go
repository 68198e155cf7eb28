package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/acme/review-platform/internal/auth"
	"github.com/acme/review-platform/internal/domain"
	"github.com/acme/review-platform/internal/event"
	apperrors "github.com/acme/review-platform/pkg/errors"
	pkgkafka "github.com/acme/review-platform/pkg/kafka"
)

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret-key-for-testing", 15*time.Minute)
}

func newTestEventProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func newTestUserService(userRepo *mockUserRepository) *UserService {
	return NewUserService(userRepo, newTestJWTManager(), newTestEventProducer(), newTestLogger())
}

// hashForTest creates a bcrypt hash with cost 4 for fast tests.
func hashForTest(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), 4)
	if err != nil {
		panic(err)
	}
	return string(h)
}

// --- Register Tests ---

func TestRegister_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestUserService(userRepo)
	ctx := context.Background()

	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	input := RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "SecurePass123",
		FirstName: "Alice",
		LastName:  "Smith",
	}

	user, err := svc.Register(ctx, input)

	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "SecurePass123", user.PasswordHash)
	assert.NotZero(t, user.CreatedAt)
	assert.NotZero(t, user.UpdatedAt)

	// The stored hash must verify against the plaintext password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("SecurePass123")))

	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestUserService(userRepo)
	ctx := context.Background()

	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "username", "alice"))

	input := RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "SecurePass123",
	}

	user, err := svc.Register(ctx, input)

	assert.Nil(t, user)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	userRepo.AssertExpectations(t)
}

func TestRegister_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing username", RegisterInput{Email: "a@example.com", Password: "pw"}},
		{"missing email", RegisterInput{Username: "alice", Password: "pw"}},
		{"missing password", RegisterInput{Username: "alice", Email: "a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			svc := newTestUserService(userRepo)

			user, err := svc.Register(context.Background(), tt.input)

			assert.Nil(t, user)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			userRepo.AssertNotCalled(t, "Create")
		})
	}
}

// --- Login Tests ---

func TestLogin_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestUserService(userRepo)
	ctx := context.Background()

	existing := &domain.User{
		ID:           "user-123",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashForTest("SecurePass123"),
	}

	userRepo.On("GetByUsername", ctx, "alice").Return(existing, nil)

	token, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "SecurePass123"})

	require.NoError(t, err)
	require.NotNil(t, token)
	assert.NotEmpty(t, token.Token)

	// The issued token must validate and carry the user's identity.
	claims, err := newTestJWTManager().Validate(token.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestUserService(userRepo)
	ctx := context.Background()

	existing := &domain.User{
		ID:           "user-123",
		Username:     "alice",
		PasswordHash: hashForTest("CorrectPass123"),
	}

	userRepo.On("GetByUsername", ctx, "alice").Return(existing, nil)

	token, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "WrongPass456"})

	assert.Nil(t, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	userRepo.AssertExpectations(t)
}

func TestLogin_UnknownUsername(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestUserService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound)

	token, err := svc.Login(ctx, LoginInput{Username: "nobody", Password: "AnyPass123"})

	assert.Nil(t, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	userRepo.AssertExpectations(t)
}

func TestLogin_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	ctx := context.Background()

	repoA := new(mockUserRepository)
	repoA.On("GetByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound)
	_, errUnknown := newTestUserService(repoA).Login(ctx, LoginInput{Username: "nobody", Password: "pw"})

	repoB := new(mockUserRepository)
	repoB.On("GetByUsername", ctx, "alice").Return(&domain.User{
		ID:           "user-123",
		Username:     "alice",
		PasswordHash: hashForTest("CorrectPass123"),
	}, nil)
	_, errWrongPw := newTestUserService(repoB).Login(ctx, LoginInput{Username: "alice", Password: "wrong"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

// --- Me Tests ---

func TestMe_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestUserService(userRepo)
	ctx := context.Background()

	expected := &domain.User{ID: "user-123", Username: "alice"}
	userRepo.On("GetByID", ctx, "user-123").Return(expected, nil)

	user, err := svc.Me(ctx, "user-123")

	require.NoError(t, err)
	assert.Equal(t, expected, user)
	userRepo.AssertExpectations(t)
}

func TestMe_DeletedUserIsUnauthorized(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestUserService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByID", ctx, "gone-user").Return(nil, apperrors.ErrNotFound)

	user, err := svc.Me(ctx, "gone-user")

	assert.Nil(t, user)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	userRepo.AssertExpectations(t)
}

// --- List Tests ---

func TestUserList_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestUserService(userRepo)
	ctx := context.Background()

	expected := []domain.User{{ID: "u-1", Username: "alice"}, {ID: "u-2", Username: "bob"}}
	userRepo.On("List", ctx).Return(expected, nil)

	users, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, users)
	userRepo.AssertExpectations(t)
}
