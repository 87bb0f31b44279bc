package delivery

import (
	"errors"
	"net/http"

	"redalert-backend/internal/category/domain"
	"redalert-backend/internal/category/dto"
	"redalert-backend/internal/category/usecase"

	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category management requests
type CategoryHandler struct {
	categoryUsecase usecase.CategoryUsecase
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase}
}

// GET /api/v1/categories
func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.categoryUsecase.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

// GET /api/v1/categories/active
func (h *CategoryHandler) GetActive(c *gin.Context) {
	categories, err := h.categoryUsecase.GetActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	category, err := h.categoryUsecase.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryUsecase.Create(toInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryUsecase.Update(c.Param("id"), toInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// PATCH /api/v1/categories/:id/toggle
func (h *CategoryHandler) Toggle(c *gin.Context) {
	category, err := h.categoryUsecase.Toggle(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryUsecase.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toInput(req dto.CategoryRequest) usecase.CategoryInput {
	return usecase.CategoryInput{
		Name:            req.Name,
		Description:     req.Description,
		FromFilter:      req.FromFilter,
		SubjectKeywords: req.SubjectKeywords,
		BodyKeywords:    req.BodyKeywords,
		IsActive:        req.IsActive,
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateCategoryName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
