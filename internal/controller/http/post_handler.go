package http

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"inkwell/internal/repo/persistent"
	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase     usecase.PostUseCase
	logger          *logger.Logger
	defaultPageSize int
	maxPageSize     int
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger, defaultPageSize, maxPageSize int) *PostHandler {
	return &PostHandler{
		postUseCase:     postUseCase,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

type CreatePostRequest struct {
	Title    string `form:"title" binding:"required"`
	Body     string `form:"body"`
	Category *uint  `form:"category"`
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a post with an optional preview and any number of attached images. Image titles are generated server-side.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Post title (globally unique)"
// @Param        body formData string false "Post body"
// @Param        category formData integer false "Category id"
// @Param        preview formData file false "Preview image"
// @Param        images formData file false "Image files, multiple allowed"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var preview *multipart.FileHeader
	if file, err := c.FormFile("preview"); err == nil {
		preview = file
	}

	var images []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		images = form.File["images"]
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), userID, usecase.CreatePostInput{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.Category,
		Preview:    preview,
		Images:     images,
	})
	if err != nil {
		h.logger.Error("Failed to create post: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, writePostResponse(post))
}

// ListPosts godoc
// @Summary      List posts
// @Description  List posts in creation order using the summary projection, with exact category/owner filters and case-insensitive title search.
// @Tags         posts
// @Produce      json
// @Param        category query integer false "Filter by category id"
// @Param        owner query integer false "Filter by owner id"
// @Param        search query string false "Substring match on title"
// @Param        page query integer false "Page number"
// @Param        page_size query integer false "Page size (default 5)"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, pageSize := h.pagination(c)

	filter := persistent.PostFilter{
		Search: c.Query("search"),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if id, ok := queryUint(c, "category"); ok {
		filter.CategoryID = &id
	}
	if id, ok := queryUint(c, "owner"); ok {
		filter.OwnerID = &id
	}

	posts, total, err := h.postUseCase.ListPosts(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		respondError(c, err)
		return
	}

	results := make([]gin.H, len(posts))
	for i, post := range posts {
		results[i] = summaryPostResponse(post)
	}

	c.JSON(http.StatusOK, gin.H{"count": total, "results": results})
}

// GetPost godoc
// @Summary      Get post by id
// @Description  Full projection with nested images, comments, likes_count, and is_liked for authenticated viewers.
// @Tags         posts
// @Produce      json
// @Param        id path integer true "Post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := paramID(c)
	if !ok {
		return
	}

	viewerID := c.GetUint("user_id")
	_, authenticated := c.Get("user_id")

	post, likeCount, isLiked, err := h.postUseCase.GetPost(c.Request.Context(), postID, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fullPostResponse(post, likeCount, isLiked, authenticated))
}

type UpdatePostRequest struct {
	Title    *string `form:"title"`
	Body     *string `form:"body"`
	Category *uint   `form:"category"`
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Replace the writable fields. Only the owner may update.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path integer true "Post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := paramID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	var req UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.Request.Method == http.MethodPut && req.Title == nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"title": "title is required"}})
		return
	}

	var preview *multipart.FileHeader
	if file, err := c.FormFile("preview"); err == nil {
		preview = file
	}

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), postID, userID, usecase.UpdatePostInput{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.Category,
		Preview:    preview,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, writePostResponse(post))
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete a post. Only the owner may delete; images, comments, likes and favorites cascade.
// @Tags         posts
// @Security     BearerAuth
// @Param        id path integer true "Post id"
// @Success      204  "no content"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := paramID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	if err := h.postUseCase.DeletePost(c.Request.Context(), postID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPostComments godoc
// @Summary      List a post's comments
// @Description  All comments attached to the post, unpaginated, in storage order.
// @Tags         posts
// @Produce      json
// @Param        id path integer true "Post id"
// @Success      200  {array}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/comments [get]
func (h *PostHandler) ListPostComments(c *gin.Context) {
	postID, ok := paramID(c)
	if !ok {
		return
	}

	comments, err := h.postUseCase.ListComments(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]gin.H, len(comments))
	for i, comment := range comments {
		results[i] = commentResponse(comment)
	}

	c.JSON(http.StatusOK, results)
}

// AddLike godoc
// @Summary      Like a post
// @Description  Creates a like. Liking the same post twice is a conflict and changes nothing.
// @Tags         posts
// @Security     BearerAuth
// @Param        id path integer true "Post id"
// @Success      201  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /posts/{id}/add_like [post]
func (h *PostHandler) AddLike(c *gin.Context) {
	postID, ok := paramID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	if err := h.postUseCase.AddLike(c.Request.Context(), postID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post liked"})
}

// RemoveLike godoc
// @Summary      Remove a like
// @Description  Deletes the caller's like. Removing a like that does not exist is a conflict.
// @Tags         posts
// @Security     BearerAuth
// @Param        id path integer true "Post id"
// @Success      204  "no content"
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /posts/{id}/remove_like [post]
func (h *PostHandler) RemoveLike(c *gin.Context) {
	postID, ok := paramID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	if err := h.postUseCase.RemoveLike(c.Request.Context(), postID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetLikes godoc
// @Summary      List likers
// @Description  Usernames of everyone who liked the post. Only the post owner may ask.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path integer true "Post id"
// @Success      200  {array}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id}/get_likes [get]
func (h *PostHandler) GetLikes(c *gin.Context) {
	postID, ok := paramID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	usernames, err := h.postUseCase.GetLikes(c.Request.Context(), postID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]gin.H, len(usernames))
	for i, username := range usernames {
		results[i] = gin.H{"owner": username}
	}

	c.JSON(http.StatusOK, results)
}

// ToggleFavorite godoc
// @Summary      Toggle favorite
// @Description  Adds the post to the caller's favorites, or removes it if already present.
// @Tags         posts
// @Security     BearerAuth
// @Param        id path integer true "Post id"
// @Success      201  {object}  map[string]string
// @Success      204  "no content"
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/favorite [post]
func (h *PostHandler) ToggleFavorite(c *gin.Context) {
	postID, ok := paramID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	added, err := h.postUseCase.ToggleFavorite(c.Request.Context(), postID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if added {
		c.JSON(http.StatusCreated, gin.H{"message": "Post added to favorites"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) pagination(c *gin.Context) (page, pageSize int) {
	page = 1
	if n, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && n > 0 {
		page = n
	}

	pageSize = h.defaultPageSize
	if n, err := strconv.Atoi(c.Query("page_size")); err == nil && n > 0 {
		pageSize = n
	}
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	return page, pageSize
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, key string) (uint, bool) {
	value := c.Query(key)
	if value == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
