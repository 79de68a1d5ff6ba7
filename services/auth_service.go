package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nutrilog/config"
	"nutrilog/models"
	"nutrilog/utils"
)

func RegisterUser(email, password, fullName string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashed,
		FullName: fullName,
	}
	return config.DB.Create(&user).Error
}

// AuthenticateUser checks credentials and mints a session token. Bad
// credentials and unknown accounts come back identically as
// ErrNotAuthenticated.
func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	err := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotAuthenticated
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrNotAuthenticated
	}

	return utils.GenerateJWT(user.ID, user.Email)
}
