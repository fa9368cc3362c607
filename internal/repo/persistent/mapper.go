package persistent

import (
	"inkwell/internal/entity"
	"inkwell/internal/model"
)

func ToPostEntity(m *model.Post) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:            m.ID,
		Title:         m.Title,
		Body:          m.Body,
		OwnerID:       m.OwnerID,
		OwnerUsername: m.Owner.Username,
		CategoryID:    m.CategoryID,
		PreviewURL:    m.PreviewURL,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.Category != nil {
		post.CategoryName = m.Category.Name
	}

	if len(m.Images) > 0 {
		post.Images = make([]entity.PostImage, len(m.Images))
		for i, img := range m.Images {
			post.Images[i] = ToPostImageEntity(&img)
		}
	}

	if len(m.Comments) > 0 {
		post.Comments = make([]entity.Comment, len(m.Comments))
		for i, comment := range m.Comments {
			post.Comments[i] = *ToCommentEntity(&comment)
		}
	}

	return post
}

func ToPostModel(e *entity.Post) *model.Post {
	if e == nil {
		return nil
	}

	post := &model.Post{
		ID:         e.ID,
		Title:      e.Title,
		Body:       e.Body,
		OwnerID:    e.OwnerID,
		CategoryID: e.CategoryID,
		PreviewURL: e.PreviewURL,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}

	if len(e.Images) > 0 {
		post.Images = make([]model.PostImage, len(e.Images))
		for i, img := range e.Images {
			post.Images[i] = *ToPostImageModel(&img)
		}
	}

	return post
}

func ToPostImageEntity(m *model.PostImage) entity.PostImage {
	if m == nil {
		return entity.PostImage{}
	}

	return entity.PostImage{
		ID:       m.ID,
		PostID:   m.PostID,
		Title:    m.Title,
		ImageURL: m.ImageURL,
	}
}

func ToPostImageModel(e *entity.PostImage) *model.PostImage {
	if e == nil {
		return nil
	}

	return &model.PostImage{
		ID:       e.ID,
		PostID:   e.PostID,
		Title:    e.Title,
		ImageURL: e.ImageURL,
	}
}

func ToCommentEntity(m *model.Comment) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:            m.ID,
		PostID:        m.PostID,
		OwnerID:       m.OwnerID,
		OwnerUsername: m.Owner.Username,
		Body:          m.Body,
		CreatedAt:     m.CreatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.Comment {
	if e == nil {
		return nil
	}

	return &model.Comment{
		ID:      e.ID,
		PostID:  e.PostID,
		OwnerID: e.OwnerID,
		Body:    e.Body,
	}
}

func ToCategoryEntity(m *model.Category) *entity.Category {
	if m == nil {
		return nil
	}

	return &entity.Category{
		ID:       m.ID,
		Name:     m.Name,
		ParentID: m.ParentID,
	}
}

func ToCategoryModel(e *entity.Category) *model.Category {
	if e == nil {
		return nil
	}

	return &model.Category{
		ID:       e.ID,
		Name:     e.Name,
		ParentID: e.ParentID,
	}
}

func ToUserEntity(m *model.User) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
	}
}

func ToUserModel(e *entity.User) *model.User {
	if e == nil {
		return nil
	}

	return &model.User{
		ID:        e.ID,
		Username:  e.Username,
		Email:     e.Email,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Password:  e.Password,
	}
}
