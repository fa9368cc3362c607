package usecase

import (
	"context"
	"testing"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock implementation of persistent.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*entity.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filter persistent.PostFilter) ([]*entity.Post, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Update(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) ListComments(ctx context.Context, postID uint) ([]*entity.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockPostRepository) CreateLike(ctx context.Context, postID, ownerID uint) error {
	args := m.Called(ctx, postID, ownerID)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteLike(ctx context.Context, postID, ownerID uint) error {
	args := m.Called(ctx, postID, ownerID)
	return args.Error(0)
}

func (m *MockPostRepository) IsLiked(ctx context.Context, postID, ownerID uint) (bool, error) {
	args := m.Called(ctx, postID, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) ListLikers(ctx context.Context, postID uint) ([]string, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPostRepository) IsFavorited(ctx context.Context, postID, ownerID uint) (bool, error) {
	args := m.Called(ctx, postID, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) CreateFavorite(ctx context.Context, postID, ownerID uint) error {
	args := m.Called(ctx, postID, ownerID)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteFavorite(ctx context.Context, postID, ownerID uint) error {
	args := m.Called(ctx, postID, ownerID)
	return args.Error(0)
}

func (m *MockPostRepository) ListFavoritePosts(ctx context.Context, ownerID uint) ([]*entity.Post, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

var _ persistent.PostRepository = (*MockPostRepository)(nil)

func newTestPostUseCase(repo *MockPostRepository) PostUseCase {
	return NewPostUseCase(repo, nil, logger.New())
}

func TestCreatePost_TitleRequired(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	_, err := uc.CreatePost(context.Background(), 1, CreatePostInput{Title: ""})

	var validationErr *entity.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreatePost_Success(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	categoryID := uint(2)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(post *entity.Post) bool {
		return post.Title == "Hello" && post.OwnerID == 1 && *post.CategoryID == categoryID
	})).Return(nil)

	post, err := uc.CreatePost(context.Background(), 1, CreatePostInput{
		Title:      "Hello",
		Body:       "World",
		CategoryID: &categoryID,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	mockRepo.AssertExpectations(t)
}

func TestGetPost_AnonymousSkipsLikeLookup(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(3)).Return(&entity.Post{ID: 3, OwnerID: 1}, nil)
	mockRepo.On("LikeCount", mock.Anything, uint(3)).Return(int64(4), nil)

	post, likeCount, isLiked, err := uc.GetPost(context.Background(), 3, 0)

	assert.NoError(t, err)
	assert.Equal(t, uint(3), post.ID)
	assert.Equal(t, int64(4), likeCount)
	assert.False(t, isLiked)
	mockRepo.AssertNotCalled(t, "IsLiked")
	mockRepo.AssertExpectations(t)
}

func TestGetPost_AuthenticatedViewer(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(3)).Return(&entity.Post{ID: 3, OwnerID: 1}, nil)
	mockRepo.On("LikeCount", mock.Anything, uint(3)).Return(int64(4), nil)
	mockRepo.On("IsLiked", mock.Anything, uint(3), uint(7)).Return(true, nil)

	_, _, isLiked, err := uc.GetPost(context.Background(), 3, 7)

	assert.NoError(t, err)
	assert.True(t, isLiked)
	mockRepo.AssertExpectations(t)
}

func TestUpdatePost_NotOwner(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(3)).Return(&entity.Post{ID: 3, OwnerID: 1}, nil)

	title := "New"
	_, err := uc.UpdatePost(context.Background(), 3, 8, UpdatePostInput{Title: &title})

	assert.ErrorIs(t, err, entity.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdatePost_PartialKeepsFields(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&entity.Post{ID: 3, OwnerID: 1, Title: "Old", Body: "Body"}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(post *entity.Post) bool {
		return post.Title == "New" && post.Body == "Body"
	})).Return(nil)

	title := "New"
	post, err := uc.UpdatePost(context.Background(), 3, 1, UpdatePostInput{Title: &title})

	assert.NoError(t, err)
	assert.Equal(t, "New", post.Title)
	assert.Equal(t, "Body", post.Body)
	mockRepo.AssertExpectations(t)
}

func TestDeletePost_NotOwner(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(3)).Return(&entity.Post{ID: 3, OwnerID: 1}, nil)

	err := uc.DeletePost(context.Background(), 3, 8)

	assert.ErrorIs(t, err, entity.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Delete")
}

func TestAddLike_Success(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("Exists", mock.Anything, uint(3)).Return(true, nil)
	mockRepo.On("IsLiked", mock.Anything, uint(3), uint(7)).Return(false, nil)
	mockRepo.On("CreateLike", mock.Anything, uint(3), uint(7)).Return(nil)

	err := uc.AddLike(context.Background(), 3, 7)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAddLike_AlreadyLiked(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("Exists", mock.Anything, uint(3)).Return(true, nil)
	mockRepo.On("IsLiked", mock.Anything, uint(3), uint(7)).Return(true, nil)

	err := uc.AddLike(context.Background(), 3, 7)

	assert.ErrorIs(t, err, entity.ErrAlreadyLiked)
	mockRepo.AssertNotCalled(t, "CreateLike")
}

func TestAddLike_PostMissing(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("Exists", mock.Anything, uint(99)).Return(false, nil)

	err := uc.AddLike(context.Background(), 99, 7)

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAddLike_ConstraintWinsUnderRace(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	// The existence check passes but the insert loses the race; the unique
	// index surfaces it as an already-liked conflict.
	mockRepo.On("Exists", mock.Anything, uint(3)).Return(true, nil)
	mockRepo.On("IsLiked", mock.Anything, uint(3), uint(7)).Return(false, nil)
	mockRepo.On("CreateLike", mock.Anything, uint(3), uint(7)).Return(entity.ErrAlreadyLiked)

	err := uc.AddLike(context.Background(), 3, 7)

	assert.ErrorIs(t, err, entity.ErrAlreadyLiked)
	mockRepo.AssertExpectations(t)
}

func TestRemoveLike_NotLiked(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("Exists", mock.Anything, uint(3)).Return(true, nil)
	mockRepo.On("DeleteLike", mock.Anything, uint(3), uint(7)).Return(entity.ErrNotLiked)

	err := uc.RemoveLike(context.Background(), 3, 7)

	assert.ErrorIs(t, err, entity.ErrNotLiked)
	mockRepo.AssertExpectations(t)
}

func TestGetLikes_NotOwner(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("GetByID", mock.Anything, uint(3)).Return(&entity.Post{ID: 3, OwnerID: 1}, nil)

	_, err := uc.GetLikes(context.Background(), 3, 8)

	assert.ErrorIs(t, err, entity.ErrForbidden)
	mockRepo.AssertNotCalled(t, "ListLikers")
}

func TestToggleFavorite_Adds(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("Exists", mock.Anything, uint(3)).Return(true, nil)
	mockRepo.On("IsFavorited", mock.Anything, uint(3), uint(7)).Return(false, nil)
	mockRepo.On("CreateFavorite", mock.Anything, uint(3), uint(7)).Return(nil)

	added, err := uc.ToggleFavorite(context.Background(), 3, 7)

	assert.NoError(t, err)
	assert.True(t, added)
	mockRepo.AssertExpectations(t)
}

func TestToggleFavorite_Removes(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("Exists", mock.Anything, uint(3)).Return(true, nil)
	mockRepo.On("IsFavorited", mock.Anything, uint(3), uint(7)).Return(true, nil)
	mockRepo.On("DeleteFavorite", mock.Anything, uint(3), uint(7)).Return(nil)

	added, err := uc.ToggleFavorite(context.Background(), 3, 7)

	assert.NoError(t, err)
	assert.False(t, added)
	mockRepo.AssertExpectations(t)
}

func TestListComments_PostMissing(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := newTestPostUseCase(mockRepo)

	mockRepo.On("Exists", mock.Anything, uint(99)).Return(false, nil)

	_, err := uc.ListComments(context.Background(), 99)

	assert.ErrorIs(t, err, entity.ErrNotFound)
}
