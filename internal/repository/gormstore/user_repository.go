package gormstore

import (
	"context"
	"strings"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.UserRepository {
	return &userRepository{db: db}
}

func toUser(m User) user.User {
	return user.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         user.Role(m.Role),
		EmployeeID:   m.EmployeeID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if isNotFound(err) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return toUser(m), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return toUser(m), nil
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	m := User{
		Email:        newUser.Email,
		PasswordHash: newUser.PasswordHash,
		Role:         string(newUser.Role),
		EmployeeID:   newUser.EmployeeID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, err
	}
	return toUser(m), nil
}

func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	var rows []User
	if err := r.db.WithContext(ctx).Order("email").Find(&rows).Error; err != nil {
		return nil, err
	}

	var employeeIDs []string
	for _, m := range rows {
		if m.EmployeeID != nil {
			employeeIDs = append(employeeIDs, *m.EmployeeID)
		}
	}
	names := make(map[string]string, len(employeeIDs))
	if len(employeeIDs) > 0 {
		var emps []Employee
		if err := r.db.WithContext(ctx).Where("id IN ?", employeeIDs).Find(&emps).Error; err != nil {
			return nil, err
		}
		for _, e := range emps {
			names[e.ID] = strings.TrimSpace(e.FirstName + " " + e.LastName)
		}
	}

	users := make([]user.User, 0, len(rows))
	for _, m := range rows {
		u := toUser(m)
		if m.EmployeeID != nil {
			if name, ok := names[*m.EmployeeID]; ok {
				u.EmployeeName = &name
			}
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
