package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/fintrack-dev/fintrack/db"
	"github.com/fintrack-dev/fintrack/internal/models"
	"github.com/fintrack-dev/fintrack/internal/types"
	"github.com/fintrack-dev/fintrack/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
	Icon string `json:"icon" binding:"required"`
}

type CategoryResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Icon      string `json:"icon"`
	IsDefault bool   `json:"is_default"`
}

var (
	categoryNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	categoryIconRe = regexp.MustCompile(`^[a-zA-Z]+$`)
)

func validateCategoryRequest(req *CategoryRequest) string {
	req.Name = strings.TrimSpace(req.Name)

	if len(req.Name) < 2 || len(req.Name) > 50 {
		return "Name must be between 2 and 50 characters"
	}

	if !categoryNameRe.MatchString(req.Name) {
		return "Name must contain only letters and spaces"
	}

	if !types.ValidTransactionType(req.Type) {
		return "Type must be INCOME or EXPENSE"
	}

	if len(req.Icon) < 1 || len(req.Icon) > 50 {
		return "Icon name must be between 1 and 50 characters"
	}

	if !categoryIconRe.MatchString(req.Icon) {
		return "Icon name must contain only letters"
	}

	return ""
}

func toCategoryResponse(category models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Type:      category.Type,
		Icon:      category.Icon,
		IsDefault: category.IsDefault,
	}
}

// ListCategories returns the system defaults plus the caller's custom
// categories, defaults first, each group alphabetically.
func ListCategories(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var categories []models.Category

	if err := db.DB.Where("is_default = ? OR user_id = ?", true, userID).
		Order("is_default DESC").
		Order("name ASC").
		Find(&categories).Error; err != nil {
		log.Printf("Failed to retrieve categories: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	response := make([]CategoryResponse, 0, len(categories))

	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": response})
}

func CreateCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CategoryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if msg := validateCategoryRequest(&body); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	category := models.Category{
		Name:      body.Name,
		Type:      body.Type,
		Icon:      body.Icon,
		IsDefault: false,
		UserID:    &userID,
	}

	if err := db.DB.Create(&category).Error; err != nil {
		log.Printf("Failed to create category: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	ctx.JSON(http.StatusCreated, toCategoryResponse(category))
}

// UpdateCategory edits a custom category. Default categories carry no owner,
// so the owner-scoped lookup rejects them the same way it rejects another
// user's category.
func UpdateCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CategoryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if msg := validateCategoryRequest(&body); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var category models.Category
	categoryID := ctx.Param("category_id")

	if err := db.DB.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found or unauthorized"})
		} else {
			log.Printf("Failed to retrieve category: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
		}
		return
	}

	category.Name = body.Name
	category.Type = body.Type
	category.Icon = body.Icon

	if err := db.DB.Save(&category).Error; err != nil {
		log.Printf("Failed to update category: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	ctx.JSON(http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory removes a custom category unconditionally. Transactions and
// budgets that reference it are left in place with a dangling category id.
func DeleteCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var category models.Category
	categoryID := ctx.Param("category_id")

	if err := db.DB.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found or unauthorized"})
		} else {
			log.Printf("Failed to retrieve category: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
		}
		return
	}

	if err := db.DB.Delete(&category).Error; err != nil {
		log.Printf("Failed to delete category: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
