package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fintrack-dev/fintrack/db"
	"github.com/fintrack-dev/fintrack/internal/finance"
	"github.com/fintrack-dev/fintrack/internal/models"
	"github.com/fintrack-dev/fintrack/internal/types"
	"github.com/fintrack-dev/fintrack/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TransactionRequest struct {
	Amount      float64  `json:"amount" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	Tags        []string `json:"tags"`
}

type TransactionResponse struct {
	ID          uint      `json:"id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Tags        []string  `json:"tags"`
	CategoryID  uint      `json:"category_id"`
	Category    string    `json:"category"`
}

// Accepted request date formats, most specific first.
var transactionDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTransactionDate(value string) (time.Time, error) {
	for _, layout := range transactionDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date")
}

// validateTransactionRequest normalizes the request in place and returns a
// human-readable message on failure. The amount is rounded to two decimals
// here so the stored value is already normalized.
func validateTransactionRequest(req *TransactionRequest) (time.Time, string) {
	req.Amount = finance.RoundAmount(req.Amount)
	if req.Amount <= 0 {
		return time.Time{}, "Amount must be positive"
	}

	if !types.ValidTransactionType(req.Type) {
		return time.Time{}, "Type must be INCOME or EXPENSE"
	}

	req.Description = strings.TrimSpace(req.Description)
	if len(req.Description) < 3 || len(req.Description) > 100 {
		return time.Time{}, "Description must be between 3 and 100 characters"
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		return time.Time{}, "Invalid date"
	}

	return date, ""
}

func encodeTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeTags(raw datatypes.JSON) []string {
	tags := []string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &tags); err != nil {
			return []string{}
		}
	}
	return tags
}

// categoryNames maps the given category ids to names in a single query.
// Dangling references (category deleted after the fact) simply stay absent.
func categoryNames(categoryIDs []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(categoryIDs))

	if len(categoryIDs) == 0 {
		return names, nil
	}

	var categories []models.Category
	if err := db.DB.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return nil, err
	}

	for _, category := range categories {
		names[category.ID] = category.Name
	}

	return names, nil
}

func toTransactionResponse(transaction models.Transaction, categoryName string) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID,
		Amount:      transaction.Amount,
		Type:        transaction.Type,
		Description: transaction.Description,
		Date:        transaction.Date,
		Tags:        decodeTags(transaction.Tags),
		CategoryID:  transaction.CategoryID,
		Category:    categoryName,
	}
}

func ListTransactions(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var transactions []models.Transaction

	if err := db.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		log.Printf("Failed to retrieve transactions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}

	categoryIDs := make([]uint, 0, len(transactions))
	for _, transaction := range transactions {
		categoryIDs = append(categoryIDs, transaction.CategoryID)
	}

	names, err := categoryNames(categoryIDs)
	if err != nil {
		log.Printf("Failed to retrieve categories: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}

	response := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		response = append(response, toTransactionResponse(transaction, names[transaction.CategoryID]))
	}

	ctx.JSON(http.StatusOK, gin.H{"transactions": response})
}

func CreateTransaction(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body TransactionRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	date, msg := validateTransactionRequest(&body)
	if msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	tags, err := encodeTags(body.Tags)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tags"})
		return
	}

	transaction := models.Transaction{
		Amount:      body.Amount,
		Type:        body.Type,
		Description: body.Description,
		Date:        date,
		Tags:        tags,
		CategoryID:  body.CategoryID,
		UserID:      userID,
	}

	if err := db.DB.Create(&transaction).Error; err != nil {
		log.Printf("Failed to create transaction: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	names, err := categoryNames([]uint{transaction.CategoryID})
	if err != nil {
		log.Printf("Failed to retrieve category: %v", err)
		names = map[uint]string{}
	}

	ctx.JSON(http.StatusCreated, toTransactionResponse(transaction, names[transaction.CategoryID]))
}

func UpdateTransaction(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body TransactionRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	date, msg := validateTransactionRequest(&body)
	if msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var transaction models.Transaction
	transactionID := ctx.Param("transaction_id")

	if err := db.DB.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found or unauthorized"})
		} else {
			log.Printf("Failed to retrieve transaction: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	tags, err := encodeTags(body.Tags)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tags"})
		return
	}

	transaction.Amount = body.Amount
	transaction.Type = body.Type
	transaction.Description = body.Description
	transaction.Date = date
	transaction.Tags = tags
	transaction.CategoryID = body.CategoryID

	if err := db.DB.Save(&transaction).Error; err != nil {
		log.Printf("Failed to update transaction: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	names, err := categoryNames([]uint{transaction.CategoryID})
	if err != nil {
		log.Printf("Failed to retrieve category: %v", err)
		names = map[uint]string{}
	}

	ctx.JSON(http.StatusOK, toTransactionResponse(transaction, names[transaction.CategoryID]))
}

func DeleteTransaction(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var transaction models.Transaction
	transactionID := ctx.Param("transaction_id")

	if err := db.DB.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found or unauthorized"})
		} else {
			log.Printf("Failed to retrieve transaction: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	if err := db.DB.Delete(&transaction).Error; err != nil {
		log.Printf("Failed to delete transaction: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
