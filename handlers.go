package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"finbe/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/health", healthHandler)

	api.POST("/auth/register", registerHandler)
	api.POST("/auth/login", loginHandler)
	api.POST("/auth/logout", logoutHandler)
	api.POST("/auth/refresh", refreshHandler)
	api.POST("/auth/reset-password", resetPasswordHandler)
	api.POST("/auth/update-password", updatePasswordHandler)

	authGroup := api.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/protected/profile", getProfileHandler)
	authGroup.PUT("/protected/profile", updateProfileHandler)
	authGroup.GET("/protected/test", protectedTestHandler)

	authGroup.GET("/transactions", listTransactionsHandler)
	authGroup.POST("/transactions", createTransactionHandler)
	authGroup.GET("/transactions/stats/summary", statsSummaryHandler)
	authGroup.GET("/transactions/stats/categories", statsCategoriesHandler)
	authGroup.GET("/transactions/:id", getTransactionHandler)
	authGroup.PUT("/transactions/:id", updateTransactionHandler)
	authGroup.DELETE("/transactions/:id", deleteTransactionHandler)

	authGroup.GET("/categories", listCategoriesHandler)
	authGroup.GET("/categories/default", listDefaultCategoriesHandler)
	authGroup.GET("/categories/custom", listCustomCategoriesHandler)
	authGroup.POST("/categories/custom", createCustomCategoryHandler)
	authGroup.PUT("/categories/custom/:id", updateCustomCategoryHandler)
	authGroup.DELETE("/categories/custom/:id", deleteCustomCategoryHandler)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is running", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

// jwtAuthMiddleware verifies the bearer token and injects the authenticated
// user id; downstream handlers never authenticate themselves.
func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		claims, err := parseAccessToken(authHeader[7:])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		userID, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Set("email", email)
		c.Next()
	}
}

func parseAccessToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func signAccessToken(user models.User, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// authedUserID returns the user id set by jwtAuthMiddleware.
func authedUserID(c *gin.Context) (string, bool) {
	v, _ := c.Get("user_id")
	id, ok := v.(string)
	return id, ok && id != ""
}

func registerHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	user, err := RegisterUser(req.Email, req.Password, req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    gin.H{"id": user.ID, "email": user.Email, "full_name": user.FullName},
	})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	user, err := Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	tokenString, err := signAccessToken(user, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    gin.H{"id": user.ID, "email": user.Email, "full_name": user.FullName},
		"session": gin.H{"access_token": tokenString, "refresh_token": refreshToken},
	})
}

// logoutHandler revokes the presented refresh token. A store failure here is
// logged only: the client's local session teardown is the primary guarantee.
func logoutHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken != "" {
		rt, err := findRefreshTokenByRaw(req.RefreshToken)
		if err == nil {
			rt.Revoked = true
			if err := db.Save(rt).Error; err != nil {
				log.Printf("logout: failed to revoke refresh token: %v", err)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token is required"})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := db.First(&user, "id = ?", rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tokenString, err := signAccessToken(user, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"session": gin.H{"access_token": tokenString, "refresh_token": newRT},
	})
}

// resetPasswordHandler issues a short-lived reset token. The response never
// reveals whether the email exists; with no mailer in this deployment the raw
// token is logged server-side for the operator to relay.
func resetPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err == nil {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err == nil {
			token := hex.EncodeToString(b)
			h := sha256.Sum256([]byte(token))
			prt := models.PasswordResetToken{
				UserID:    user.ID,
				TokenHash: hex.EncodeToString(h[:]),
				ExpiresAt: time.Now().Add(time.Hour),
			}
			if err := db.Create(&prt).Error; err != nil {
				log.Printf("reset-password: failed to store token: %v", err)
			} else {
				log.Printf("reset-password: token for %s: %s", user.Email, token)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent successfully"})
}

// updatePasswordHandler sets a new password. It accepts either a live access
// token or a reset token issued by resetPasswordHandler.
func updatePasswordHandler(c *gin.Context) {
	var req struct {
		Password    string `json:"password" binding:"required"`
		AccessToken string `json:"access_token"`
		ResetToken  string `json:"reset_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password and a token are required"})
		return
	}
	var userID string
	switch {
	case req.ResetToken != "":
		h := sha256.Sum256([]byte(req.ResetToken))
		th := hex.EncodeToString(h[:])
		var prt models.PasswordResetToken
		if err := db.Where("token_hash = ?", th).First(&prt).Error; err != nil || prt.Used || time.Now().After(prt.ExpiresAt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired reset token"})
			return
		}
		db.Model(&prt).Update("used", true)
		userID = prt.UserID
	case req.AccessToken != "":
		claims, err := parseAccessToken(req.AccessToken)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid access token"})
			return
		}
		userID, _ = claims["sub"].(string)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "password and a token are required"})
		return
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
		return
	}
	if err := SetPassword(userID, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func getProfileHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"user": gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"full_name":    user.FullName,
			"created_at":   user.CreatedAt,
			"last_sign_in": user.LastSignInAt,
		},
	})
}

func updateProfileHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		FullName string `json:"full_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name is required"})
		return
	}
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err := db.Model(&user).Update("full_name", req.FullName).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    gin.H{"id": user.ID, "email": user.Email, "full_name": req.FullName},
	})
}

func protectedTestHandler(c *gin.Context) {
	userID, _ := authedUserID(c)
	email, _ := c.Get("email")
	c.JSON(http.StatusOK, gin.H{
		"message":   "This is a protected route",
		"user_id":   userID,
		"email":     email,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
