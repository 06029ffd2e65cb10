package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/models"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/utils"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Organization *string
	Phone        *string
}

// UserUpdate is a partial update; nil fields are untouched. IsAdmin and
// IsActive are only honored when the caller is an admin.
type UserUpdate struct {
	Name         *string
	Email        *string
	Organization *string
	Phone        *string
	Password     *string
	IsAdmin      *bool
	IsActive     *bool
}

// Register creates a user. The first user ever registered becomes the
// bootstrap admin; everyone after starts unprivileged.
func (s *UserService) Register(in *RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, errInvalid("Name, email, and password are required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !strings.Contains(email, "@") {
		return nil, errInvalid("Invalid email format")
	}
	if len(in.Password) < 8 {
		return nil, errInvalid("Password must be at least 8 characters")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Organization: trimPtr(in.Organization),
		Phone:        trimPtr(in.Phone),
		IsActive:     true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errInvalid("Email already registered")
		}

		var total int64
		if err := tx.Model(&models.User{}).Count(&total).Error; err != nil {
			return err
		}
		user.IsAdmin = total == 0

		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and stamps last_login. A valid
// password on a deactivated account is still a Forbidden, not a login.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errUnauthenticated("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, errUnauthenticated("Invalid email or password")
	}
	if !user.IsActive {
		return nil, errForbidden("Account is deactivated")
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login", &now).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial profile update. Callers may edit themselves;
// only admins may edit others or touch is_admin / is_active. Stripping
// the last active admin of either flag fails with a policy error; the
// count check and the write happen as one guarded statement so two
// concurrent demotions cannot both pass.
func (s *UserService) Update(current *models.User, id uint, in *UserUpdate) (*models.User, error) {
	if current.ID != id && !current.IsAdmin {
		return nil, errForbidden("Unauthorized")
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("User not found")
			}
			return err
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if in.Organization != nil {
			updates["organization"] = trimPtr(in.Organization)
		}
		if in.Phone != nil {
			updates["phone"] = trimPtr(in.Phone)
		}

		if in.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*in.Email))
			if email != user.Email {
				var taken int64
				if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&taken).Error; err != nil {
					return err
				}
				if taken > 0 {
					return errInvalid("Email already in use")
				}
				updates["email"] = email
			}
		}

		if in.Password != nil {
			if len(*in.Password) < 8 {
				return errInvalid("Password must be at least 8 characters")
			}
			hash, err := utils.HashPassword(*in.Password)
			if err != nil {
				return err
			}
			updates["password_hash"] = hash
		}

		removesAdmin := false
		if current.IsAdmin {
			if in.IsAdmin != nil {
				updates["is_admin"] = *in.IsAdmin
				if user.IsAdmin && !*in.IsAdmin {
					removesAdmin = true
				}
			}
			if in.IsActive != nil {
				updates["is_active"] = *in.IsActive
				if user.IsAdmin && !*in.IsActive {
					removesAdmin = true
				}
			}
		}

		if len(updates) == 0 {
			return nil
		}

		if removesAdmin && user.IsActive {
			res := tx.Model(&models.User{}).
				Where("id = ? AND (SELECT COUNT(*) FROM users WHERE is_admin = ? AND is_active = ?) > 1", user.ID, true, true).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errPolicy("Cannot remove the last admin")
			}
		} else if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Deactivate soft-deletes a user. Users are never hard-deleted. The
// last active admin cannot be deactivated.
func (s *UserService) Deactivate(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("User not found")
			}
			return err
		}

		if user.IsAdmin && user.IsActive {
			res := tx.Model(&models.User{}).
				Where("id = ? AND (SELECT COUNT(*) FROM users WHERE is_admin = ? AND is_active = ?) > 1", user.ID, true, true).
				Update("is_active", false)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errPolicy("Cannot delete the last admin")
			}
			return nil
		}

		return tx.Model(&user).Update("is_active", false).Error
	})
}
