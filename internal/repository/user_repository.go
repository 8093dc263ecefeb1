package repository

import (
	"context"

	"gorm.io/gorm"

	"foodorder/internal/model"
	"foodorder/internal/patch"
)

var userPatch = patch.NewBuilder("users", "name", "email", "role")

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uint, fields ...patch.Field) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID returns the public projection of a user.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Select(model.UserColumns).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := forUpdate(r.db.WithContext(ctx)).Select(model.UserColumns).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the full row, password hash included.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := r.db.WithContext(ctx).Select(model.UserColumns).
		Order("created_at DESC").Order("id DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies the present fields and returns the refreshed row.
func (r *userRepository) Update(ctx context.Context, id uint, fields ...patch.Field) (*model.User, error) {
	stmt, err := userPatch.Build(id, fields...)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
