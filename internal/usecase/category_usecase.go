package usecase

import (
	"context"
	"errors"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
)

type CategoryUseCase interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, name string, parentID *uint) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id uint, name string, parentID *uint) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type categoryUseCase struct {
	categoryRepo persistent.CategoryRepository
}

func NewCategoryUseCase(categoryRepo persistent.CategoryRepository) CategoryUseCase {
	return &categoryUseCase{categoryRepo: categoryRepo}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, name string, parentID *uint) (*entity.Category, error) {
	if name == "" {
		return nil, entity.NewValidationError("name", "name is required")
	}
	if parentID != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, *parentID); err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return nil, entity.NewValidationError("parent", "parent category does not exist")
			}
			return nil, err
		}
	}

	category := &entity.Category{Name: name, ParentID: parentID}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id uint, name string, parentID *uint) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, entity.NewValidationError("name", "name is required")
	}

	if parentID != nil {
		if err := uc.checkAncestry(ctx, id, *parentID); err != nil {
			return nil, err
		}
	}

	category.Name = name
	category.ParentID = parentID
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := uc.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.categoryRepo.Delete(ctx, id)
}

// checkAncestry walks up from the proposed parent and rejects the update if
// the chain passes through the category itself. The schema alone does not
// rule out cycles, so this is the write-time guard.
func (uc *categoryUseCase) checkAncestry(ctx context.Context, id, parentID uint) error {
	current := parentID
	for {
		if current == id {
			return entity.ErrCategoryCycle
		}

		parent, err := uc.categoryRepo.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return entity.NewValidationError("parent", "parent category does not exist")
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}
