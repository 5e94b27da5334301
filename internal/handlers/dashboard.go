package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrack-dev/fintrack/db"
	"github.com/fintrack-dev/fintrack/internal/finance"
	"github.com/fintrack-dev/fintrack/internal/models"
	"github.com/fintrack-dev/fintrack/internal/types"
	"github.com/fintrack-dev/fintrack/internal/utils"
	"github.com/gin-gonic/gin"
)

type CategoryExpense struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Budget   float64 `json:"budget"`
	Progress float64 `json:"progress"`
}

type DashboardStats struct {
	TotalIncome        float64           `json:"total_income"`
	TotalExpenses      float64           `json:"total_expenses"`
	Balance            float64           `json:"balance"`
	ExpensesByCategory []CategoryExpense `json:"expenses_by_category"`
}

type DashboardResponse struct {
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
	Stats              DashboardStats        `json:"stats"`
}

// recentTransactionCount is how many transactions the dashboard shows.
const recentTransactionCount = 5

// referenceMonth resolves the month/year the dashboard aggregates over.
// Explicit query parameters keep the computation deterministic; without them
// the current wall-clock month is used.
func referenceMonth(ctx *gin.Context) (int, int, bool) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()

	if raw := ctx.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || !finance.ValidMonth(parsed) {
			return 0, 0, false
		}
		month = parsed
	}

	if raw := ctx.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < types.MinBudgetYear || parsed > types.MaxBudgetYear {
			return 0, 0, false
		}
		year = parsed
	}

	return month, year, true
}

func sumTransactions(userID uint, transactionType string) (float64, error) {
	var total float64

	err := db.DB.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ?", userID, transactionType).
		Scan(&total).Error

	return total, err
}

// GetDashboard assembles the dashboard snapshot: the five most recent
// transactions, lifetime income/expense totals, and the month's expenses per
// category joined against that month's budgets.
func GetDashboard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	month, year, ok := referenceMonth(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month or year"})
		return
	}

	// Recent activity
	var recent []models.Transaction
	if err := db.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(recentTransactionCount).
		Find(&recent).Error; err != nil {
		log.Printf("Failed to retrieve recent transactions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	// Lifetime totals
	totalIncome, err := sumTransactions(userID, types.TypeIncome)
	if err != nil {
		log.Printf("Failed to sum income: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	totalExpenses, err := sumTransactions(userID, types.TypeExpense)
	if err != nil {
		log.Printf("Failed to sum expenses: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	// Per-category spend inside the reference month
	windowStart, windowEnd := finance.MonthWindow(month, year)

	type categoryTotal struct {
		CategoryID uint
		Total      float64
	}

	var expenseGroups []categoryTotal
	if err := db.DB.Model(&models.Transaction{}).
		Select("category_id, SUM(amount) AS total").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?",
			userID, types.TypeExpense, windowStart, windowEnd).
		Group("category_id").
		Scan(&expenseGroups).Error; err != nil {
		log.Printf("Failed to group expenses: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	// Budgets for the reference month
	var budgets []models.Budget
	if err := db.DB.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Find(&budgets).Error; err != nil {
		log.Printf("Failed to retrieve budgets: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	budgetByCategory := make(map[uint]float64, len(budgets))
	for _, budget := range budgets {
		budgetByCategory[budget.CategoryID] = budget.Amount
	}

	categoryIDs := make([]uint, 0, len(expenseGroups)+len(recent))
	for _, group := range expenseGroups {
		categoryIDs = append(categoryIDs, group.CategoryID)
	}
	for _, transaction := range recent {
		categoryIDs = append(categoryIDs, transaction.CategoryID)
	}

	names, err := categoryNames(categoryIDs)
	if err != nil {
		log.Printf("Failed to retrieve categories: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	expensesByCategory := make([]CategoryExpense, 0, len(expenseGroups))
	for _, group := range expenseGroups {
		name, found := names[group.CategoryID]
		if !found {
			name = "Unknown"
		}

		budget := budgetByCategory[group.CategoryID]

		expensesByCategory = append(expensesByCategory, CategoryExpense{
			Name:     name,
			Amount:   group.Total,
			Budget:   budget,
			Progress: finance.Progress(group.Total, budget),
		})
	}

	recentResponses := make([]TransactionResponse, 0, len(recent))
	for _, transaction := range recent {
		recentResponses = append(recentResponses, toTransactionResponse(transaction, names[transaction.CategoryID]))
	}

	ctx.JSON(http.StatusOK, DashboardResponse{
		RecentTransactions: recentResponses,
		Stats: DashboardStats{
			TotalIncome:        totalIncome,
			TotalExpenses:      totalExpenses,
			Balance:            totalIncome - totalExpenses,
			ExpensesByCategory: expensesByCategory,
		},
	})
}
