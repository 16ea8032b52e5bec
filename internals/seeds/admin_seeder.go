package seeds

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"lmsku_backend/internals/configs"
	"lmsku_backend/internals/constants"
	authService "lmsku_backend/internals/features/users/auth/service"
	userModel "lmsku_backend/internals/features/users/user/model"
)

// Run creates the bootstrap admin account when no admin exists yet. Running
// it again is a no-op.
func Run(db *gorm.DB) error {
	var existing userModel.UserModel
	err := db.Where("role = ?", constants.RoleAdmin).First(&existing).Error
	if err == nil {
		log.Printf("[SEED] admin already present (%s), nothing to do", existing.UserName)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := configs.GetEnv("SEED_ADMIN_PASSWORD", "admin123")
	hash, err := authService.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &userModel.UserModel{
		UserName: configs.GetEnv("SEED_ADMIN_USERNAME", "admin"),
		Email:    configs.GetEnv("SEED_ADMIN_EMAIL", "admin@lmsku.local"),
		Password: hash,
		FullName: "Administrator",
		Role:     constants.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("[SEED] admin %s created", admin.UserName)
	return nil
}
