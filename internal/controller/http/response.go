package http

import (
	"errors"
	"net/http"

	"inkwell/internal/entity"

	"github.com/gin-gonic/gin"
)

// respondError translates the usecase error taxonomy into HTTP statuses,
// keeping validation, unauthenticated, forbidden, not-found and conflict
// outcomes distinguishable.
func respondError(c *gin.Context, err error) {
	var validationErr *entity.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{validationErr.Field: validationErr.Message}})
	case errors.Is(err, entity.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, entity.ErrAlreadyLiked):
		c.JSON(http.StatusConflict, gin.H{"error": "You have already liked this post"})
	case errors.Is(err, entity.ErrNotLiked):
		c.JSON(http.StatusConflict, gin.H{"error": "You have not liked this post"})
	case errors.Is(err, entity.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflicting request, try again"})
	case errors.Is(err, entity.ErrCategoryCycle):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"parent": "category cannot be its own ancestor"}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Each action maps to exactly one named projection, built explicitly here.

func summaryPostResponse(post *entity.Post) gin.H {
	return gin.H{
		"id":      post.ID,
		"title":   post.Title,
		"preview": post.PreviewURL,
	}
}

func fullPostResponse(post *entity.Post, likeCount int64, isLiked, authenticated bool) gin.H {
	images := make([]gin.H, len(post.Images))
	for i, image := range post.Images {
		images[i] = gin.H{
			"title": image.Title,
			"image": image.ImageURL,
			"post":  image.PostID,
		}
	}

	comments := make([]gin.H, len(post.Comments))
	for i := range post.Comments {
		comments[i] = commentResponse(&post.Comments[i])
	}

	response := gin.H{
		"id":          post.ID,
		"title":       post.Title,
		"body":        post.Body,
		"owner":       post.OwnerUsername,
		"category":    post.CategoryName,
		"preview":     post.PreviewURL,
		"images":      images,
		"comments":    comments,
		"likes_count": likeCount,
		"created_at":  post.CreatedAt,
		"updated_at":  post.UpdatedAt,
	}

	// Anonymous viewers get no is_liked key at all.
	if authenticated {
		response["is_liked"] = isLiked
	}

	return response
}

func writePostResponse(post *entity.Post) gin.H {
	images := make([]gin.H, len(post.Images))
	for i, image := range post.Images {
		images[i] = gin.H{
			"title": image.Title,
			"image": image.ImageURL,
			"post":  image.PostID,
		}
	}

	return gin.H{
		"id":       post.ID,
		"title":    post.Title,
		"body":     post.Body,
		"category": post.CategoryID,
		"preview":  post.PreviewURL,
		"images":   images,
	}
}

func commentResponse(comment *entity.Comment) gin.H {
	return gin.H{
		"id":    comment.ID,
		"body":  comment.Body,
		"owner": comment.OwnerUsername,
		"post":  comment.PostID,
	}
}

func categoryResponse(category *entity.Category) gin.H {
	return gin.H{
		"id":     category.ID,
		"name":   category.Name,
		"parent": category.ParentID,
	}
}

func userListResponse(user *entity.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
	}
}

func userDetailResponse(user *entity.User) gin.H {
	favorites := make([]gin.H, len(user.Favorites))
	for i := range user.Favorites {
		favorites[i] = gin.H{"post": summaryPostResponse(&user.Favorites[i])}
	}

	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"favorites":  favorites,
	}
}
