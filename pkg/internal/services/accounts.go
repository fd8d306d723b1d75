package services

import (
	"errors"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where(models.Account{
		BaseModel: models.BaseModel{ID: id},
	}).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func GetAccountByName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where(models.Account{Name: name}).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func HashPassword(password string) (string, error) {
	data, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(data), err
}

// Authenticate verifies a login submission against the stored password
// hash. Static credential shortcuts are deliberately not supported.
func Authenticate(name, password string) (models.Account, error) {
	account, err := GetAccountByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrInvalidCredentials
		}
		return account, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return account, ErrInvalidCredentials
	}

	return account, nil
}

// SeedAdminAccount creates the configured admin account when the database
// does not contain it yet. Runs once during bootstrap.
func SeedAdminAccount() error {
	name := viper.GetString("admin.username")

	var count int64
	if err := database.C.Model(&models.Account{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	} else if count > 0 {
		return nil
	}

	hash, err := HashPassword(viper.GetString("admin.password"))
	if err != nil {
		return err
	}

	account := models.Account{
		Name:     name,
		Email:    viper.GetString("admin.email"),
		Password: hash,
		IsAdmin:  true,
	}

	if err := database.C.Create(&account).Error; err != nil {
		return err
	}

	log.Info().Str("name", name).Msg("Admin account seeded.")
	return nil
}
