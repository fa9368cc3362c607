package usecase

import (
	"context"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
)

type CommentUseCase interface {
	ListComments(ctx context.Context) ([]*entity.Comment, error)
	GetComment(ctx context.Context, id uint) (*entity.Comment, error)
	CreateComment(ctx context.Context, ownerID, postID uint, body string) (*entity.Comment, error)
	UpdateComment(ctx context.Context, id, userID uint, body string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, id, userID uint) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	postRepo    persistent.PostRepository
}

func NewCommentUseCase(commentRepo persistent.CommentRepository, postRepo persistent.PostRepository) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (uc *commentUseCase) ListComments(ctx context.Context) ([]*entity.Comment, error) {
	return uc.commentRepo.List(ctx)
}

func (uc *commentUseCase) GetComment(ctx context.Context, id uint) (*entity.Comment, error) {
	return uc.commentRepo.GetByID(ctx, id)
}

func (uc *commentUseCase) CreateComment(ctx context.Context, ownerID, postID uint, body string) (*entity.Comment, error) {
	if body == "" {
		return nil, entity.NewValidationError("body", "body is required")
	}

	exists, err := uc.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, entity.NewValidationError("post", "post does not exist")
	}

	comment := &entity.Comment{
		PostID:  postID,
		OwnerID: ownerID,
		Body:    body,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, id, userID uint, body string) (*entity.Comment, error) {
	comment, err := uc.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.OwnerID != userID {
		return nil, entity.ErrForbidden
	}

	if body == "" {
		return nil, entity.NewValidationError("body", "body is required")
	}

	comment.Body = body
	if err := uc.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, id, userID uint) error {
	comment, err := uc.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.OwnerID != userID {
		return entity.ErrForbidden
	}

	return uc.commentRepo.Delete(ctx, id)
}
