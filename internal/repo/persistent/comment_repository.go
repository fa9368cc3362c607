package persistent

import (
	"context"
	"errors"

	"inkwell/internal/entity"
	"inkwell/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id uint) (*entity.Comment, error)
	List(ctx context.Context) ([]*entity.Comment, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.WithContext(ctx).Create(commentModel).Error; err != nil {
		return err
	}

	// Reload with the owner so the projection can show the username.
	return r.reload(ctx, commentModel.ID, comment)
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var commentModel model.Comment
	err := r.db.WithContext(ctx).Preload("Owner").First(&commentModel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) List(ctx context.Context) ([]*entity.Comment, error) {
	var commentModels []model.Comment
	err := r.db.WithContext(ctx).Preload("Owner").Find(&commentModels).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	err := r.db.WithContext(ctx).Model(&model.Comment{ID: comment.ID}).
		Updates(map[string]interface{}{
			"body":    comment.Body,
			"post_id": comment.PostID,
		}).Error
	if err != nil {
		return err
	}
	return r.reload(ctx, comment.ID, comment)
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}

func (r *commentRepository) reload(ctx context.Context, id uint, dst *entity.Comment) error {
	var commentModel model.Comment
	if err := r.db.WithContext(ctx).Preload("Owner").First(&commentModel, id).Error; err != nil {
		return err
	}
	*dst = *ToCommentEntity(&commentModel)
	return nil
}
