package http

import (
	"net/http"
	"time"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account. Both password fields must match and the first name must be title-cased.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /accounts/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// Login godoc
// @Summary      Login
// @Description  Authenticate with username and password; returns a bearer token.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /accounts/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.userUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userListResponse(user),
	})
}

// Logout godoc
// @Summary      Logout
// @Description  Revokes the presented token until it expires.
// @Tags         accounts
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /accounts/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	tokenID := c.GetString("token_id")

	expiresAt := time.Now()
	if value, exists := c.Get("token_expires_at"); exists {
		if t, ok := value.(time.Time); ok {
			expiresAt = t
		}
	}

	if err := h.userUseCase.Logout(c.Request.Context(), tokenID, expiresAt); err != nil {
		h.logger.Error("Failed to revoke token: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// ListUsers godoc
// @Summary      List users
// @Description  Public listing of user ids and usernames, optionally filtered by a username search.
// @Tags         accounts
// @Produce      json
// @Param        search query string false "Substring match on username"
// @Success      200  {array}  map[string]interface{}
// @Router       /accounts [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUseCase.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.logger.Error("Failed to list users: %v", err)
		respondError(c, err)
		return
	}

	results := make([]gin.H, len(users))
	for i, user := range users {
		results[i] = userListResponse(user)
	}

	c.JSON(http.StatusOK, results)
}

// GetUser godoc
// @Summary      Get account detail
// @Description  Self-view only: the account's fields plus the favorited posts.
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id path integer true "User id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /accounts/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	targetID, ok := paramID(c)
	if !ok {
		return
	}
	requesterID := c.GetUint("user_id")

	user, err := h.userUseCase.GetUser(c.Request.Context(), requesterID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userDetailResponse(user))
}
