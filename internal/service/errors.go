package service

import (
	"errors"

	"gorm.io/gorm"
)

// notFound swaps gorm's missing-row error for the domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
