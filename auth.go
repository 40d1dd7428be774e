package main

import (
	"fmt"
	"strings"
	"time"

	"finbe/models"

	"golang.org/x/crypto/bcrypt"
)

// Auth helpers kept in the root package so handlers can call them directly.

func RegisterUser(email, password, fullName string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, validationErr("valid email required")
	}
	if len(password) < 6 { // basic password policy
		return models.User{}, validationErr("password too short (min 6)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return models.User{}, validationErr("user already exists")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{Email: email, FullName: strings.TrimSpace(fullName), HashedPassword: hashedPassword}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return models.User{}, validationErr("user already exists")
		}
		return models.User{}, storeErr(err)
	}
	return user, nil
}

func Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	now := time.Now()
	db.Model(&user).Update("last_sign_in_at", now)
	user.LastSignInAt = &now
	return user, nil
}

// SetPassword hashes and stores a new password for the user.
func SetPassword(userID, password string) error {
	if len(password) < 6 {
		return validationErr("password too short (min 6)")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := db.Model(&models.User{}).Where("id = ?", userID).Update("hashed_password", hashed).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
