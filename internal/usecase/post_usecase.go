package usecase

import (
	"context"
	"fmt"
	"mime/multipart"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/logger"
	"inkwell/pkg/s3"

	"github.com/google/uuid"
)

type CreatePostInput struct {
	Title      string
	Body       string
	CategoryID *uint
	Preview    *multipart.FileHeader
	Images     []*multipart.FileHeader
}

// UpdatePostInput carries the writable projection. Nil fields are left
// untouched, which makes the same input serve both full and partial updates.
type UpdatePostInput struct {
	Title      *string
	Body       *string
	CategoryID *uint
	Preview    *multipart.FileHeader
}

type PostUseCase interface {
	CreatePost(ctx context.Context, ownerID uint, in CreatePostInput) (*entity.Post, error)
	GetPost(ctx context.Context, postID, viewerID uint) (*entity.Post, int64, bool, error)
	ListPosts(ctx context.Context, filter persistent.PostFilter) ([]*entity.Post, int64, error)
	UpdatePost(ctx context.Context, postID, userID uint, in UpdatePostInput) (*entity.Post, error)
	DeletePost(ctx context.Context, postID, userID uint) error

	ListComments(ctx context.Context, postID uint) ([]*entity.Comment, error)

	AddLike(ctx context.Context, postID, userID uint) error
	RemoveLike(ctx context.Context, postID, userID uint) error
	GetLikes(ctx context.Context, postID, userID uint) ([]string, error)
	ToggleFavorite(ctx context.Context, postID, userID uint) (bool, error)
}

type postUseCase struct {
	postRepo persistent.PostRepository
	s3Client *s3.Client
	logger   *logger.Logger
}

func NewPostUseCase(postRepo persistent.PostRepository, s3Client *s3.Client, logger *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		s3Client: s3Client,
		logger:   logger,
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, ownerID uint, in CreatePostInput) (*entity.Post, error) {
	if in.Title == "" {
		return nil, entity.NewValidationError("title", "title is required")
	}

	var previewURL string
	if in.Preview != nil {
		url, err := uc.uploadFile(ownerID, in.Preview, "image/jpeg")
		if err != nil {
			return nil, err
		}
		previewURL = url
	}

	var images []entity.PostImage
	for _, file := range in.Images {
		url, err := uc.uploadFile(ownerID, file, "image/jpeg")
		if err != nil {
			return nil, err
		}
		images = append(images, entity.PostImage{ImageURL: url})
	}

	post := &entity.Post{
		Title:      in.Title,
		Body:       in.Body,
		OwnerID:    ownerID,
		CategoryID: in.CategoryID,
		PreviewURL: previewURL,
		Images:     images,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, postID, viewerID uint) (*entity.Post, int64, bool, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, 0, false, err
	}

	// likes_count is recomputed on every read, never denormalized.
	likeCount, err := uc.postRepo.LikeCount(ctx, postID)
	if err != nil {
		return nil, 0, false, err
	}

	isLiked := false
	if viewerID != 0 {
		isLiked, err = uc.postRepo.IsLiked(ctx, postID, viewerID)
		if err != nil {
			return nil, 0, false, err
		}
	}

	return post, likeCount, isLiked, nil
}

func (uc *postUseCase) ListPosts(ctx context.Context, filter persistent.PostFilter) ([]*entity.Post, int64, error) {
	return uc.postRepo.List(ctx, filter)
}

func (uc *postUseCase) UpdatePost(ctx context.Context, postID, userID uint, in UpdatePostInput) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.OwnerID != userID {
		return nil, entity.ErrForbidden
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, entity.NewValidationError("title", "title is required")
		}
		post.Title = *in.Title
	}
	if in.Body != nil {
		post.Body = *in.Body
	}
	if in.CategoryID != nil {
		post.CategoryID = in.CategoryID
	}
	if in.Preview != nil {
		url, err := uc.uploadFile(userID, in.Preview, "image/jpeg")
		if err != nil {
			return nil, err
		}
		post.PreviewURL = url
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.OwnerID != userID {
		return entity.ErrForbidden
	}

	return uc.postRepo.Delete(ctx, postID)
}

func (uc *postUseCase) ListComments(ctx context.Context, postID uint) ([]*entity.Comment, error) {
	exists, err := uc.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, entity.ErrNotFound
	}

	return uc.postRepo.ListComments(ctx, postID)
}

func (uc *postUseCase) AddLike(ctx context.Context, postID, userID uint) error {
	exists, err := uc.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return entity.ErrNotFound
	}

	// Safety-net check; the unique index still decides under concurrency.
	liked, err := uc.postRepo.IsLiked(ctx, postID, userID)
	if err != nil {
		return err
	}
	if liked {
		return entity.ErrAlreadyLiked
	}

	return uc.postRepo.CreateLike(ctx, postID, userID)
}

func (uc *postUseCase) RemoveLike(ctx context.Context, postID, userID uint) error {
	exists, err := uc.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return entity.ErrNotFound
	}

	return uc.postRepo.DeleteLike(ctx, postID, userID)
}

func (uc *postUseCase) GetLikes(ctx context.Context, postID, userID uint) ([]string, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.OwnerID != userID {
		return nil, entity.ErrForbidden
	}

	return uc.postRepo.ListLikers(ctx, postID)
}

// ToggleFavorite adds the post to the caller's favorites, or removes it when
// already present. Returns true when the favorite was added.
func (uc *postUseCase) ToggleFavorite(ctx context.Context, postID, userID uint) (bool, error) {
	exists, err := uc.postRepo.Exists(ctx, postID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, entity.ErrNotFound
	}

	favorited, err := uc.postRepo.IsFavorited(ctx, postID, userID)
	if err != nil {
		return false, err
	}

	if favorited {
		if err := uc.postRepo.DeleteFavorite(ctx, postID, userID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := uc.postRepo.CreateFavorite(ctx, postID, userID); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *postUseCase) uploadFile(ownerID uint, file *multipart.FileHeader, defaultContentType string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	fileKey := fmt.Sprintf("posts/%d/%s%s", ownerID, uuid.New().String(), getFileExtension(file.Filename))

	url, err := uc.s3Client.UploadFile(fileKey, src, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload file to S3: %v", err)
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return url, nil
}

func getFileExtension(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}
