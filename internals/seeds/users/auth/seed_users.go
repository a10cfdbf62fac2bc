package user

import (
	"log/slog"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/users/users/model"
)

type UserSeed struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// SeedUsers inserts accounts that do not exist yet. Existing rows are left alone
// so a seeded admin demoted through the API stays demoted.
func SeedUsers(db *gorm.DB, raw []byte) error {
	var inputs []UserSeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return err
	}

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))
		if email == "" {
			continue
		}
		var n int64
		if err := db.Model(&model.UserModel{}).Where("LOWER(email) = ?", email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			slog.Debug("seed: user exists, skipped", "email", email)
			continue
		}
		role := strings.ToLower(data.Role)
		if !constants.IsValidRole(role) {
			role = constants.RoleUser
		}
		u := model.UserModel{Email: email, Name: data.Name, Role: role}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
		slog.Info("seed: user created", "email", email, "role", role)
	}
	return nil
}
