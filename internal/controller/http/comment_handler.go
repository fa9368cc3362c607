package http

import (
	"net/http"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

type CommentRequest struct {
	Body string `json:"body" binding:"required"`
	Post uint   `json:"post" binding:"required"`
}

// ListComments godoc
// @Summary      List all comments
// @Tags         comments
// @Produce      json
// @Success      200  {array}  map[string]interface{}
// @Router       /comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentUseCase.ListComments(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list comments: %v", err)
		respondError(c, err)
		return
	}

	results := make([]gin.H, len(comments))
	for i, comment := range comments {
		results[i] = commentResponse(comment)
	}

	c.JSON(http.StatusOK, results)
}

// CreateComment godoc
// @Summary      Create a comment
// @Description  Attach a comment to an existing post. The owner is the authenticated caller.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CommentRequest true "Comment data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.CreateComment(c.Request.Context(), userID, req.Post, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, commentResponse(comment))
}

// GetComment godoc
// @Summary      Get comment by id
// @Tags         comments
// @Produce      json
// @Param        id path integer true "Comment id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	commentID, ok := paramID(c)
	if !ok {
		return
	}

	comment, err := h.commentUseCase.GetComment(c.Request.Context(), commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, commentResponse(comment))
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// UpdateComment godoc
// @Summary      Update comment
// @Description  Only the comment's owner may update.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path integer true "Comment id"
// @Param        request body UpdateCommentRequest true "New body"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := paramID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.UpdateComment(c.Request.Context(), commentID, userID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, commentResponse(comment))
}

// DeleteComment godoc
// @Summary      Delete comment
// @Description  Only the comment's owner may delete.
// @Tags         comments
// @Security     BearerAuth
// @Param        id path integer true "Comment id"
// @Success      204  "no content"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := paramID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	if err := h.commentUseCase.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
