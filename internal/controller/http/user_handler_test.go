package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock implementation of UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}

func (m *MockUserUseCase) GetUser(ctx context.Context, requesterID, targetID uint) (*entity.User, error) {
	args := m.Called(ctx, requesterID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) ListUsers(ctx context.Context, search string) ([]*entity.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)

func TestRegister_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/accounts/register", handler.Register)

	mockUser := &entity.User{ID: 1, Username: "alice", FirstName: "Alice", LastName: "Carson"}
	mockUseCase.On("Register", mock.Anything, usecase.RegisterInput{
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Carson",
		Password:  "password123",
		Password2: "password123",
	}).Return(mockUser, nil)

	body := `{"username":"alice","first_name":"Alice","last_name":"Carson","password":"password123","password2":"password123"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/accounts/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response["username"])
	// The password never appears in any projection
	_, hasPassword := response["password"]
	assert.False(t, hasPassword)

	mockUseCase.AssertExpectations(t)
}

func TestRegister_ValidationError(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/accounts/register", handler.Register)

	mockUseCase.On("Register", mock.Anything, mock.Anything).
		Return(nil, entity.NewValidationError("first_name", "first name must be title-cased"))

	body := `{"username":"alice","first_name":"alice","last_name":"Carson","password":"password123","password2":"password123"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/accounts/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errs := response["errors"].(map[string]interface{})
	assert.Contains(t, errs, "first_name")

	mockUseCase.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/accounts/login", handler.Login)

	mockUser := &entity.User{ID: 1, Username: "alice"}
	mockUseCase.On("Login", mock.Anything, "alice", "password123").Return(mockUser, "jwt-token", nil)

	body := `{"username":"alice","password":"password123"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/accounts/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "jwt-token", response["token"])

	mockUseCase.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/accounts/login", handler.Login)

	mockUseCase.On("Login", mock.Anything, "alice", "wrong").Return(nil, "", entity.ErrInvalidCredentials)

	body := `{"username":"alice","password":"wrong"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/accounts/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetUser_SelfOnly(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/accounts/:id", func(c *gin.Context) {
		c.Set("user_id", uint(2))
		handler.GetUser(c)
	})

	mockUseCase.On("GetUser", mock.Anything, uint(2), uint(1)).Return(nil, entity.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/accounts/1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetUser_WithFavorites(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/accounts/:id", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		handler.GetUser(c)
	})

	mockUser := &entity.User{
		ID:        1,
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Carson",
		Favorites: []entity.Post{
			{ID: 9, Title: "Saved post", PreviewURL: "http://example.com/p.jpg"},
		},
	}
	mockUseCase.On("GetUser", mock.Anything, uint(1), uint(1)).Return(mockUser, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/accounts/1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	favorites := response["favorites"].([]interface{})
	assert.Equal(t, 1, len(favorites))
	post := favorites[0].(map[string]interface{})["post"].(map[string]interface{})
	assert.Equal(t, "Saved post", post["title"])

	mockUseCase.AssertExpectations(t)
}

func TestListUsers_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/accounts", handler.ListUsers)

	mockUsers := []*entity.User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}
	mockUseCase.On("ListUsers", mock.Anything, "").Return(mockUsers, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/accounts", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 2, len(response))
	assert.Equal(t, "alice", response[0]["username"])
	// The listing projection is id and username only
	_, hasFirstName := response[0]["first_name"]
	assert.False(t, hasFirstName)

	mockUseCase.AssertExpectations(t)
}

func TestLogout_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	expiresAt := time.Now().Add(time.Hour)

	router := setupTestRouter()
	router.POST("/accounts/logout", func(c *gin.Context) {
		c.Set("token_id", "jti-123")
		c.Set("token_expires_at", expiresAt)
		handler.Logout(c)
	})

	mockUseCase.On("Logout", mock.Anything, "jti-123", expiresAt).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/accounts/logout", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}
