package configs

import (
	"errors"
	"log"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSuperAdmin creates the platform super admin on first start.
func SeedSuperAdmin(database *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		log.Println("skip seeding super admin: missing SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD")
		return nil
	}

	var existing entity.User
	err := database.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Role != entity.RoleSuperAdmin {
			return database.Model(&existing).Update("role", entity.RoleSuperAdmin).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Fullname: "Super Admin",
		Email:    email,
		Password: string(hash),
		Role:     entity.RoleSuperAdmin,
	}
	return database.Create(&admin).Error
}
