package service

import (
	"context"
	"errors"
	"fmt"

	"foodorder/internal/authz"
	"foodorder/internal/db"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/model"
	"foodorder/internal/patch"
	"foodorder/internal/repository"
)

// UpdateUserInput is a sparse user update; nil fields are left alone.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *model.Role
}

func (in UpdateUserInput) fields() []patch.Field {
	return []patch.Field{
		patch.Value("name", in.Name),
		patch.Value("email", in.Email),
		patch.Value("role", in.Role),
	}
}

// UserService contains business logic for users.
type UserService interface {
	List(ctx context.Context, caller authz.Identity) ([]model.User, error)
	Get(ctx context.Context, caller authz.Identity, id uint) (*model.User, error)
	Update(ctx context.Context, caller authz.Identity, id uint, in UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, caller authz.Identity, id uint) error
}

type userService struct {
	store repository.Store
	guard *authz.Guard
}

// NewUserService wires a user service.
func NewUserService(store repository.Store, guard *authz.Guard) UserService {
	return &userService{store: store, guard: guard}
}

func (s *userService) List(ctx context.Context, caller authz.Identity) ([]model.User, error) {
	if err := s.guard.Authorize(caller, authz.ActionListUsers, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.store.Users().List(ctx)
}

func (s *userService) Get(ctx context.Context, caller authz.Identity, id uint) (*model.User, error) {
	if err := s.guard.Authorize(caller, authz.ActionViewUser, authz.OwnedBy(id)); err != nil {
		return nil, err
	}
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// Update changes the present fields of a user. Only admins may change a role.
func (s *userService) Update(ctx context.Context, caller authz.Identity, id uint, in UpdateUserInput) (*model.User, error) {
	if err := s.guard.Authorize(caller, authz.ActionUpdateUser, authz.OwnedBy(id)); err != nil {
		return nil, err
	}

	fields := in.fields()
	if patch.Count(fields...) == 0 {
		return nil, apperrors.ErrNoFields
	}
	if in.Role != nil {
		if err := s.guard.Authorize(caller, authz.ActionChangeRole, authz.Resource{}); err != nil {
			return nil, err
		}
		if !in.Role.Valid() {
			return nil, apperrors.Invalid("role")
		}
	}

	var updated *model.User
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Users().FindByIDForUpdate(ctx, id); err != nil {
			return notFound(err, apperrors.ErrUserNotFound)
		}

		user, err := tx.Users().Update(ctx, id, fields...)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return apperrors.ErrEmailTaken
			}
			if errors.Is(err, patch.ErrNoFields) {
				return apperrors.ErrNoFields
			}
			return fmt.Errorf("update user: %w", err)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a user that nothing references.
func (s *userService) Delete(ctx context.Context, caller authz.Identity, id uint) error {
	if err := s.guard.Authorize(caller, authz.ActionDeleteUser, authz.OwnedBy(id)); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Users().FindByIDForUpdate(ctx, id); err != nil {
			return notFound(err, apperrors.ErrUserNotFound)
		}
		if err := tx.Users().Delete(ctx, id); err != nil {
			if db.IsForeignKeyViolation(err) {
				return apperrors.ErrHasDependents
			}
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
