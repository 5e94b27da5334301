package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/fintrack-dev/fintrack/db"
	"github.com/fintrack-dev/fintrack/internal/finance"
	"github.com/fintrack-dev/fintrack/internal/models"
	"github.com/fintrack-dev/fintrack/internal/types"
	"github.com/fintrack-dev/fintrack/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BudgetRequest struct {
	Amount     float64 `json:"amount" binding:"required"`
	CategoryID uint    `json:"category_id" binding:"required"`
	Month      int     `json:"month" binding:"required"`
	Year       int     `json:"year" binding:"required"`
}

type BudgetResponse struct {
	ID         uint    `json:"id"`
	Amount     float64 `json:"amount"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	CategoryID uint    `json:"category_id"`
	Category   string  `json:"category"`
}

const duplicateBudgetMessage = "A budget already exists for this category in the selected month/year"

func validateBudgetRequest(req *BudgetRequest) string {
	req.Amount = finance.RoundAmount(req.Amount)
	if req.Amount <= 0 {
		return "Amount must be positive"
	}

	if !finance.ValidMonth(req.Month) {
		return "Month must be between 1 and 12"
	}

	if req.Year < types.MinBudgetYear || req.Year > types.MaxBudgetYear {
		return "Year must be between 2024 and 2100"
	}

	return ""
}

// eligibleBudgetCategory loads the category a budget may be attached to: it
// must exist, be an expense category, and be either a system default or owned
// by the caller.
func eligibleBudgetCategory(categoryID uint, userID uint) (models.Category, error) {
	var category models.Category

	err := db.DB.Where("id = ? AND type = ?", categoryID, types.TypeExpense).
		Where("is_default = ? OR user_id = ?", true, userID).
		First(&category).Error

	return category, err
}

func toBudgetResponse(budget models.Budget, categoryName string) BudgetResponse {
	return BudgetResponse{
		ID:         budget.ID,
		Amount:     budget.Amount,
		Month:      budget.Month,
		Year:       budget.Year,
		CategoryID: budget.CategoryID,
		Category:   categoryName,
	}
}

func ListBudgets(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var budgets []models.Budget

	if err := db.DB.Where("user_id = ?", userID).
		Order("year DESC").
		Order("month DESC").
		Find(&budgets).Error; err != nil {
		log.Printf("Failed to retrieve budgets: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budgets"})
		return
	}

	categoryIDs := make([]uint, 0, len(budgets))
	for _, budget := range budgets {
		categoryIDs = append(categoryIDs, budget.CategoryID)
	}

	names, err := categoryNames(categoryIDs)
	if err != nil {
		log.Printf("Failed to retrieve categories: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budgets"})
		return
	}

	response := make([]BudgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		response = append(response, toBudgetResponse(budget, names[budget.CategoryID]))
	}

	ctx.JSON(http.StatusOK, gin.H{"budgets": response})
}

func CreateBudget(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body BudgetRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if msg := validateBudgetRequest(&body); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	category, err := eligibleBudgetCategory(body.CategoryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			log.Printf("Failed to retrieve category: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		}
		return
	}

	var existing models.Budget
	err = db.DB.Where("user_id = ? AND category_id = ? AND month = ? AND year = ?",
		userID, body.CategoryID, body.Month, body.Year).
		First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": duplicateBudgetMessage})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check existing budget: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		return
	}

	budget := models.Budget{
		Amount:     body.Amount,
		Month:      body.Month,
		Year:       body.Year,
		CategoryID: body.CategoryID,
		UserID:     userID,
	}

	if err := db.DB.Create(&budget).Error; err != nil {
		// Two concurrent creates can both pass the existence check; the unique
		// index on the tuple decides the loser, which lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": duplicateBudgetMessage})
			return
		}
		log.Printf("Failed to create budget: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		return
	}

	ctx.JSON(http.StatusCreated, toBudgetResponse(budget, category.Name))
}

func UpdateBudget(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body BudgetRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if msg := validateBudgetRequest(&body); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var budget models.Budget
	budgetID := ctx.Param("budget_id")

	if err := db.DB.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Budget not found or unauthorized"})
		} else {
			log.Printf("Failed to retrieve budget: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budget"})
		}
		return
	}

	category, err := eligibleBudgetCategory(body.CategoryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			log.Printf("Failed to retrieve category: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		}
		return
	}

	// A different budget may already occupy the target tuple.
	var occupant models.Budget
	err = db.DB.Where("user_id = ? AND category_id = ? AND month = ? AND year = ? AND id != ?",
		userID, body.CategoryID, body.Month, body.Year, budget.ID).
		First(&occupant).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": duplicateBudgetMessage})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check existing budget: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}

	budget.Amount = body.Amount
	budget.Month = body.Month
	budget.Year = body.Year
	budget.CategoryID = body.CategoryID

	if err := db.DB.Save(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": duplicateBudgetMessage})
			return
		}
		log.Printf("Failed to update budget: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}

	ctx.JSON(http.StatusOK, toBudgetResponse(budget, category.Name))
}

func DeleteBudget(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var budget models.Budget
	budgetID := ctx.Param("budget_id")

	if err := db.DB.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Budget not found or unauthorized"})
		} else {
			log.Printf("Failed to retrieve budget: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budget"})
		}
		return
	}

	if err := db.DB.Delete(&budget).Error; err != nil {
		log.Printf("Failed to delete budget: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
