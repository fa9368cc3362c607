package usecase

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/cache"
	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Password2 string
}

type UserUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetUser(ctx context.Context, requesterID, targetID uint) (*entity.User, error)
	ListUsers(ctx context.Context, search string) ([]*entity.User, error)
}

type userUseCase struct {
	userRepo    persistent.UserRepository
	postRepo    persistent.PostRepository
	jwtService  *jwt.Service
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewUserUseCase(
	userRepo persistent.UserRepository,
	postRepo persistent.PostRepository,
	jwtService *jwt.Service,
	redisClient *redis.Client,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo:    userRepo,
		postRepo:    postRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
		logger:      logger,
	}
}

var titleCaser = cases.Title(language.Und)

func (uc *userUseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Username == "" {
		return nil, entity.NewValidationError("username", "username is required")
	}
	if len(in.Password) < 6 {
		return nil, entity.NewValidationError("password", "password must be at least 6 characters")
	}
	if in.Password != in.Password2 {
		return nil, entity.NewValidationError("password", "passwords didn't match")
	}
	if in.FirstName == "" {
		return nil, entity.NewValidationError("first_name", "first name is required")
	}
	if titleCaser.String(in.FirstName) != in.FirstName {
		return nil, entity.NewValidationError("first_name", "name must start with uppercase")
	}
	if in.LastName == "" {
		return nil, entity.NewValidationError("last_name", "last name is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hashedPassword),
	}

	// Username uniqueness is the storage constraint's call; the repository
	// translates a duplicate into a field-level validation error.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (uc *userUseCase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

// Logout blacklists the presented token until its natural expiry; the auth
// middleware refuses blacklisted tokens from then on.
func (uc *userUseCase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return uc.redisClient.Set(ctx, cache.RevokedTokenKey(tokenID), 1, ttl).Err()
}

// GetUser returns the detail projection. Accounts are self-view only.
func (uc *userUseCase) GetUser(ctx context.Context, requesterID, targetID uint) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.ID != requesterID {
		return nil, entity.ErrForbidden
	}

	favorites, err := uc.postRepo.ListFavoritePosts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, post := range favorites {
		user.Favorites = append(user.Favorites, *post)
	}

	user.Password = ""
	return user, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context, search string) ([]*entity.User, error) {
	users, err := uc.userRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		user.Password = ""
	}
	return users, nil
}
