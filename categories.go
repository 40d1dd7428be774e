package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"finbe/models"
	"finbe/pkg/cache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultCacheKey  = "defaults"
	defaultCacheTTL  = 5 * time.Minute
	fallbackCatIcon  = "📝"
	fallbackCatColor = "#85C1E9"
)

// The default tier changes only at seed time, so it is served through a
// read-through TTL cache instead of a per-request table scan. The custom tier
// is never cached; every validation re-queries the store for it.
var defaultCategoryCache = cache.New[[]models.Category](defaultCacheTTL)

// defaultCategories returns the global default tier, name-ordered.
func defaultCategories() ([]models.Category, error) {
	if cats, ok := defaultCategoryCache.Get(defaultCacheKey); ok {
		return cats, nil
	}
	var cats []models.Category
	if err := db.Where("user_id IS NULL").Order("name").Find(&cats).Error; err != nil {
		return nil, storeErr(err)
	}
	defaultCategoryCache.Set(defaultCacheKey, cats)
	return cats, nil
}

// userCategories returns the caller's custom tier, name-ordered.
func userCategories(userID string) ([]models.Category, error) {
	var cats []models.Category
	if err := db.Where("user_id = ?", userID).Order("name").Find(&cats).Error; err != nil {
		return nil, storeErr(err)
	}
	return cats, nil
}

// categoryExists reports whether name is usable by the given user: the global
// default tier is checked first by exact match and short-circuits, then the
// user's custom tier if a user id is supplied.
func categoryExists(name, userID string) (bool, error) {
	defaults, err := defaultCategories()
	if err != nil {
		return false, err
	}
	for _, c := range defaults {
		if c.Name == name {
			return true, nil
		}
	}
	if userID == "" {
		return false, nil
	}
	var cnt int64
	if err := db.Model(&models.Category{}).Where("user_id = ? AND name = ?", userID, name).Count(&cnt).Error; err != nil {
		return false, storeErr(err)
	}
	return cnt > 0, nil
}

// listCategoriesHandler returns everything visible to the caller: defaults
// followed by the caller's custom categories.
func listCategoriesHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	defaults, err := defaultCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	custom, err := userCategories(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	all := make([]models.Category, 0, len(defaults)+len(custom))
	all = append(all, defaults...)
	all = append(all, custom...)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": all})
}

func listDefaultCategoriesHandler(c *gin.Context) {
	defaults, err := defaultCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": defaults})
}

func listCustomCategoriesHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	custom, err := userCategories(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": custom})
}

// createCustomCategoryHandler creates a category in the caller's tier. Names
// colliding with either tier are rejected up front, so a custom category can
// never shadow a default one.
func createCustomCategoryHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respondError(c, validationErr("Category name is required"))
		return
	}
	name := strings.TrimSpace(req.Name)
	exists, err := categoryExists(name, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if exists {
		respondError(c, validationErr("Category with this name already exists"))
		return
	}
	cat := models.Category{
		Name:   name,
		Icon:   req.Icon,
		Color:  req.Color,
		UserID: &userID,
	}
	if cat.Icon == "" {
		cat.Icon = fallbackCatIcon
	}
	if cat.Color == "" {
		cat.Color = fallbackCatColor
	}
	if err := db.Create(&cat).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the pre-check
			respondError(c, validationErr("Category with this name already exists"))
			return
		}
		respondError(c, storeErr(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Custom category created successfully",
		"data":    cat,
	})
}

func updateCustomCategoryHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var cat models.Category
	err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, notFoundErr("Category not found"))
		} else {
			respondError(c, storeErr(err))
		}
		return
	}
	var req struct {
		Name  *string `json:"name"`
		Icon  *string `json:"icon"`
		Color *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, validationErr("invalid request body"))
		return
	}
	patch := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondError(c, validationErr("Category name is required"))
			return
		}
		if name != cat.Name {
			// duplicate check across both tiers, excluding the category being renamed
			exists, err := categoryExists(name, userID)
			if err != nil {
				respondError(c, err)
				return
			}
			if exists {
				respondError(c, validationErr("Category with this name already exists"))
				return
			}
		}
		patch["name"] = name
	}
	if req.Icon != nil {
		patch["icon"] = *req.Icon
	}
	if req.Color != nil {
		patch["color"] = *req.Color
	}
	if len(patch) > 0 {
		if err := db.Model(&cat).Updates(patch).Error; err != nil {
			respondError(c, storeErr(err))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Custom category updated successfully",
		"data":    cat,
	})
}

func deleteCustomCategoryHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var cat models.Category
	err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, notFoundErr("Category not found"))
		} else {
			respondError(c, storeErr(err))
		}
		return
	}
	if err := db.Delete(&cat).Error; err != nil {
		respondError(c, storeErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Custom category deleted successfully"})
}
