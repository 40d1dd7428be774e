package main

import (
	"errors"
	"net/http"

	"finbe/models"
	"finbe/pkg/stats"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// findTransaction loads a transaction scoped to its owner. Scoping the
// predicate by user id is what enforces ownership everywhere.
func findTransaction(id, userID string) (*models.Transaction, error) {
	var tx models.Transaction
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("Transaction not found")
		}
		return nil, storeErr(err)
	}
	return &tx, nil
}

func listTransactionsHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var filter models.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, validationErr("invalid filter parameters"))
		return
	}
	// Invalid kinds are rejected here, at the caller boundary, not in the compiler.
	if filter.Type != "" && !models.ValidType(filter.Type) {
		respondError(c, validationErr(`Transaction type must be either "income" or "expense"`))
		return
	}
	filter = filter.Normalize()

	var items []models.Transaction
	q := filter.Apply(db.Where("user_id = ?", userID))
	if err := q.Find(&items).Error; err != nil {
		respondError(c, storeErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"pagination": gin.H{
			"limit":  filter.Limit,
			"offset": filter.Offset,
			"total":  len(items),
		},
	})
}

func getTransactionHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tx, err := findTransaction(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tx})
}

func createTransactionHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Amount      *float64 `json:"amount"`
		Category    string   `json:"category"`
		Type        string   `json:"transaction_type"`
		Date        string   `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validationErr("invalid request body"))
		return
	}
	if req.Title == "" || req.Amount == nil || req.Category == "" {
		respondError(c, validationErr("Title, amount, and category are required"))
		return
	}
	if *req.Amount <= 0 {
		respondError(c, validationErr("Amount must be greater than 0"))
		return
	}
	if req.Type == "" {
		req.Type = models.TypeExpense
	}
	if !models.ValidType(req.Type) {
		respondError(c, validationErr(`Transaction type must be either "income" or "expense"`))
		return
	}
	date := models.Today()
	if req.Date != "" {
		parsed, err := models.ParseDate(req.Date)
		if err != nil {
			respondError(c, validationErr("Date must be formatted YYYY-MM-DD"))
			return
		}
		date = parsed
	}
	exists, err := categoryExists(req.Category, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		respondError(c, validationErr("Invalid category. Use existing category or create a custom one first."))
		return
	}

	tx := models.Transaction{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      *req.Amount,
		Category:    req.Category,
		Type:        req.Type,
		Date:        date,
	}
	if err := db.Create(&tx).Error; err != nil {
		respondError(c, storeErr(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Transaction created successfully",
		"data":    tx,
	})
}

func updateTransactionHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tx, err := findTransaction(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Amount      *float64 `json:"amount"`
		Category    *string  `json:"category"`
		Type        *string  `json:"transaction_type"`
		Date        *string  `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validationErr("invalid request body"))
		return
	}
	if req.Amount != nil && *req.Amount <= 0 {
		respondError(c, validationErr("Amount must be greater than 0"))
		return
	}
	if req.Type != nil && !models.ValidType(*req.Type) {
		respondError(c, validationErr(`Transaction type must be either "income" or "expense"`))
		return
	}
	if req.Category != nil {
		exists, err := categoryExists(*req.Category, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !exists {
			respondError(c, validationErr("Invalid category. Use existing category or create a custom one first."))
			return
		}
	}

	patch := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			respondError(c, validationErr("Title cannot be empty"))
			return
		}
		patch["title"] = *req.Title
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Amount != nil {
		patch["amount"] = *req.Amount
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Type != nil {
		patch["transaction_type"] = *req.Type
	}
	if req.Date != nil {
		parsed, err := models.ParseDate(*req.Date)
		if err != nil {
			respondError(c, validationErr("Date must be formatted YYYY-MM-DD"))
			return
		}
		patch["date"] = parsed
	}
	if len(patch) > 0 {
		if err := db.Model(tx).Updates(patch).Error; err != nil {
			respondError(c, storeErr(err))
			return
		}
	}
	updated, err := findTransaction(tx.ID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Transaction updated successfully",
		"data":    updated,
	})
}

func deleteTransactionHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tx, err := findTransaction(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := db.Delete(tx).Error; err != nil {
		respondError(c, storeErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Transaction deleted successfully"})
}

// statsEntries fetches only the columns the aggregation engine needs,
// applying the date window (and optionally kind) the stats endpoints accept.
func statsEntries(userID string, filter models.TransactionFilter) ([]stats.Entry, error) {
	var rows []struct {
		Category        string
		Amount          float64
		TransactionType string
	}
	q := db.Model(&models.Transaction{}).
		Select("category, amount, transaction_type").
		Where("user_id = ?", userID)
	for _, p := range filter.Predicates() {
		q = q.Where(p.Expr, p.Args...)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	entries := make([]stats.Entry, len(rows))
	for i, r := range rows {
		entries[i] = stats.Entry{Category: r.Category, Amount: r.Amount, Type: r.TransactionType}
	}
	return entries, nil
}

// statsSummaryHandler returns overall totals for the caller, windowed by the
// optional start_date/end_date query parameters.
func statsSummaryHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	filter := models.TransactionFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	entries, err := statsEntries(userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats.Summarize(entries)})
}

// statsCategoriesHandler returns the per-category breakdown, windowed by date
// and optionally restricted to one transaction kind.
func statsCategoriesHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	filter := models.TransactionFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Type:      c.Query("transaction_type"),
	}
	if filter.Type != "" && !models.ValidType(filter.Type) {
		respondError(c, validationErr(`Transaction type must be either "income" or "expense"`))
		return
	}
	entries, err := statsEntries(userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats.ByCategory(entries)})
}
