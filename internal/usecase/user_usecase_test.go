package usecase

import (
	"context"
	"testing"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entity.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

func newTestUserUseCase(userRepo *MockUserRepository, postRepo *MockPostRepository) UserUseCase {
	return NewUserUseCase(userRepo, postRepo, jwt.NewService("test-secret"), nil, logger.New())
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Carson",
		Password:  "password123",
		Password2: "password123",
	}
}

func TestRegister_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := newTestUserUseCase(mockUserRepo, new(MockPostRepository))

	mockUserRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
		// Stored password must be a bcrypt hash, never the plaintext
		return user.Username == "alice" &&
			bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")) == nil
	})).Return(nil)

	user, err := uc.Register(context.Background(), validRegisterInput())

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := newTestUserUseCase(mockUserRepo, new(MockPostRepository))

	in := validRegisterInput()
	in.Password2 = "different123"

	_, err := uc.Register(context.Background(), in)

	var validationErr *entity.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestRegister_ShortPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := newTestUserUseCase(mockUserRepo, new(MockPostRepository))

	in := validRegisterInput()
	in.Password = "abc"
	in.Password2 = "abc"

	_, err := uc.Register(context.Background(), in)

	var validationErr *entity.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)
}

func TestRegister_FirstNameNotTitleCased(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := newTestUserUseCase(mockUserRepo, new(MockPostRepository))

	for _, name := range []string{"alice", "ALICE", "aLice"} {
		in := validRegisterInput()
		in.FirstName = name

		_, err := uc.Register(context.Background(), in)

		var validationErr *entity.ValidationError
		assert.ErrorAs(t, err, &validationErr, "first name %q should be rejected", name)
		assert.Equal(t, "first_name", validationErr.Field)
	}
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestRegister_MissingLastName(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := newTestUserUseCase(mockUserRepo, new(MockPostRepository))

	in := validRegisterInput()
	in.LastName = ""

	_, err := uc.Register(context.Background(), in)

	var validationErr *entity.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "last_name", validationErr.Field)
}

func TestLogin_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := newTestUserUseCase(mockUserRepo, new(MockPostRepository))

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	mockUserRepo.On("GetByUsername", mock.Anything, "alice").
		Return(&entity.User{ID: 1, Username: "alice", Password: string(hashed)}, nil)

	user, token, err := uc.Login(context.Background(), "alice", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.Password)

	claims, err := jwt.NewService("test-secret").ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := newTestUserUseCase(mockUserRepo, new(MockPostRepository))

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	mockUserRepo.On("GetByUsername", mock.Anything, "alice").
		Return(&entity.User{ID: 1, Username: "alice", Password: string(hashed)}, nil)

	_, _, err := uc.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := newTestUserUseCase(mockUserRepo, new(MockPostRepository))

	mockUserRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, entity.ErrNotFound)

	_, _, err := uc.Login(context.Background(), "ghost", "password123")

	// Unknown users and wrong passwords are indistinguishable to the caller
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestGetUser_SelfOnly(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockPostRepo := new(MockPostRepository)
	uc := newTestUserUseCase(mockUserRepo, mockPostRepo)

	mockUserRepo.On("GetByID", mock.Anything, uint(2)).Return(&entity.User{ID: 2, Username: "bob"}, nil)

	_, err := uc.GetUser(context.Background(), 1, 2)

	assert.ErrorIs(t, err, entity.ErrForbidden)
	mockPostRepo.AssertNotCalled(t, "ListFavoritePosts")
}

func TestGetUser_IncludesFavorites(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockPostRepo := new(MockPostRepository)
	uc := newTestUserUseCase(mockUserRepo, mockPostRepo)

	mockUserRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&entity.User{ID: 1, Username: "alice", Password: "hash"}, nil)
	mockPostRepo.On("ListFavoritePosts", mock.Anything, uint(1)).
		Return([]*entity.Post{{ID: 9, Title: "Saved"}}, nil)

	user, err := uc.GetUser(context.Background(), 1, 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, len(user.Favorites))
	assert.Equal(t, "Saved", user.Favorites[0].Title)
	assert.Empty(t, user.Password)
	mockUserRepo.AssertExpectations(t)
	mockPostRepo.AssertExpectations(t)
}

func TestListUsers_StripsPasswords(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := newTestUserUseCase(mockUserRepo, new(MockPostRepository))

	mockUserRepo.On("List", mock.Anything, "ali").
		Return([]*entity.User{{ID: 1, Username: "alice", Password: "hash"}}, nil)

	users, err := uc.ListUsers(context.Background(), "ali")

	assert.NoError(t, err)
	assert.Equal(t, 1, len(users))
	assert.Empty(t, users[0].Password)
}
