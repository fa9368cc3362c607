package http

import (
	"net/http"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryUseCase usecase.CategoryUseCase
	logger          *logger.Logger
}

func NewCategoryHandler(categoryUseCase usecase.CategoryUseCase, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryUseCase: categoryUseCase,
		logger:          logger,
	}
}

type CategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	Parent *uint  `json:"parent"`
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  map[string]interface{}
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryUseCase.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list categories: %v", err)
		respondError(c, err)
		return
	}

	results := make([]gin.H, len(categories))
	for i, category := range categories {
		results[i] = categoryResponse(category)
	}

	c.JSON(http.StatusOK, results)
}

// CreateCategory godoc
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CategoryRequest true "Category data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryUseCase.CreateCategory(c.Request.Context(), req.Name, req.Parent)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, categoryResponse(category))
}

// UpdateCategory godoc
// @Summary      Update category
// @Description  Rejects a parent change that would make the category its own ancestor.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path integer true "Category id"
// @Param        request body CategoryRequest true "Category data"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := paramID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryUseCase.UpdateCategory(c.Request.Context(), categoryID, req.Name, req.Parent)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryResponse(category))
}

// DeleteCategory godoc
// @Summary      Delete category
// @Description  Deletes the category and its descendants; posts keep living with a cleared category.
// @Tags         categories
// @Security     BearerAuth
// @Param        id path integer true "Category id"
// @Success      204  "no content"
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.categoryUseCase.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
