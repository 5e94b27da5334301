package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fintrack-dev/fintrack/db"
	"github.com/fintrack-dev/fintrack/internal/models"
	"github.com/fintrack-dev/fintrack/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Date", "Type", "Category", "Description", "Amount", "Tags"}

func exportRows(userID uint) ([][]string, error) {
	var transactions []models.Transaction

	if err := db.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	categoryIDs := make([]uint, 0, len(transactions))
	for _, transaction := range transactions {
		categoryIDs = append(categoryIDs, transaction.CategoryID)
	}

	names, err := categoryNames(categoryIDs)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(transactions))
	for _, transaction := range transactions {
		rows = append(rows, []string{
			transaction.Date.Format("2006-01-02"),
			transaction.Type,
			names[transaction.CategoryID],
			transaction.Description,
			strconv.FormatFloat(transaction.Amount, 'f', 2, 64),
			strings.Join(decodeTags(transaction.Tags), ","),
		})
	}

	return rows, nil
}

// ExportTransactions streams the caller's full transaction history as a CSV
// or XLSX attachment, selected by the format query parameter.
func ExportTransactions(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	format := ctx.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Format must be csv or xlsx"})
		return
	}

	rows, err := exportRows(userID)
	if err != nil {
		log.Printf("Failed to export transactions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export transactions"})
		return
	}

	filename := fmt.Sprintf("transactions_%s.%s", time.Now().Format("20060102"), format)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "csv" {
		ctx.Header("Content-Type", "text/csv; charset=utf-8")

		writer := csv.NewWriter(ctx.Writer)
		defer writer.Flush()

		if err := writer.Write(exportHeader); err != nil {
			log.Printf("Failed to write CSV header: %v", err)
			return
		}

		for _, row := range rows {
			if err := writer.Write(row); err != nil {
				log.Printf("Failed to write CSV row: %v", err)
				return
			}
		}

		return
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	header := make([]interface{}, len(exportHeader))
	for i, column := range exportHeader {
		header[i] = column
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		log.Printf("Failed to write XLSX header: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export transactions"})
		return
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, value := range row {
			cells[j] = value
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
			log.Printf("Failed to write XLSX row: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export transactions"})
			return
		}
	}

	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(ctx.Writer); err != nil {
		log.Printf("Failed to write XLSX file: %v", err)
	}
}
