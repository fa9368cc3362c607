package persistent

import (
	"context"
	"errors"

	"inkwell/internal/entity"
	"inkwell/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows a post listing. Category and owner are exact matches,
// Search is a case-insensitive substring match on the title.
type PostFilter struct {
	CategoryID *uint
	OwnerID    *uint
	Search     string
	Limit      int
	Offset     int
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id uint) (*entity.Post, error)
	List(ctx context.Context, filter PostFilter) ([]*entity.Post, int64, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)

	ListComments(ctx context.Context, postID uint) ([]*entity.Comment, error)

	CreateLike(ctx context.Context, postID, ownerID uint) error
	DeleteLike(ctx context.Context, postID, ownerID uint) error
	IsLiked(ctx context.Context, postID, ownerID uint) (bool, error)
	LikeCount(ctx context.Context, postID uint) (int64, error)
	ListLikers(ctx context.Context, postID uint) ([]string, error)

	IsFavorited(ctx context.Context, postID, ownerID uint) (bool, error)
	CreateFavorite(ctx context.Context, postID, ownerID uint) error
	DeleteFavorite(ctx context.Context, postID, ownerID uint) error
	ListFavoritePosts(ctx context.Context, ownerID uint) ([]*entity.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post row and all attached image rows in one transaction,
// so a failed image insert never leaves a half-created post visible.
func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		images := postModel.Images
		postModel.Images = nil

		if err := tx.Create(postModel).Error; err != nil {
			return err
		}

		for i := range images {
			images[i].PostID = postModel.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		postModel.Images = images

		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.NewValidationError("title", "post with this title already exists")
		}
		return err
	}

	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*entity.Post, error) {
	var postModel model.Post
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Comments").
		Preload("Comments.Owner").
		Preload("Owner").
		Preload("Category").
		First(&postModel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]*entity.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var postModels []model.Post
	query = query.Order("created_at ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	postModel.Images = nil

	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(postModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.NewValidationError("title", "post with this title already exists")
		}
		return err
	}

	post.UpdatedAt = postModel.UpdatedAt
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) ListComments(ctx context.Context, postID uint) ([]*entity.Comment, error) {
	var commentModels []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("post_id = ?", postID).
		Find(&commentModels).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, nil
}

// CreateLike relies on the (post, owner) unique index to reject duplicates,
// including two concurrent inserts that both passed the existence check.
func (r *postRepository) CreateLike(ctx context.Context, postID, ownerID uint) error {
	like := &model.Like{PostID: postID, OwnerID: ownerID}
	err := r.db.WithContext(ctx).Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entity.ErrAlreadyLiked
	}
	return err
}

func (r *postRepository) DeleteLike(ctx context.Context, postID, ownerID uint) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND owner_id = ?", postID, ownerID).
		Delete(&model.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotLiked
	}
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, postID, ownerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ? AND owner_id = ?", postID, ownerID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) ListLikers(ctx context.Context, postID uint) ([]string, error) {
	var usernames []string
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Joins("JOIN users ON users.id = likes.owner_id").
		Where("likes.post_id = ?", postID).
		Order("likes.id ASC").
		Pluck("users.username", &usernames).Error
	if err != nil {
		return nil, err
	}
	return usernames, nil
}

func (r *postRepository) IsFavorited(ctx context.Context, postID, ownerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("post_id = ? AND owner_id = ?", postID, ownerID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) CreateFavorite(ctx context.Context, postID, ownerID uint) error {
	favorite := &model.Favorite{PostID: postID, OwnerID: ownerID}
	err := r.db.WithContext(ctx).Create(favorite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entity.ErrConflict
	}
	return err
}

func (r *postRepository) DeleteFavorite(ctx context.Context, postID, ownerID uint) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND owner_id = ?", postID, ownerID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrConflict
	}
	return nil
}

func (r *postRepository) ListFavoritePosts(ctx context.Context, ownerID uint) ([]*entity.Post, error) {
	var postModels []model.Post
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN favorites ON favorites.post_id = posts.id").
		Where("favorites.owner_id = ?", ownerID).
		Order("favorites.id ASC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}
