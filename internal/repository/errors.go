package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound reports that a referenced pet, care item, or user does
// not exist. Callers surface it; nothing retries.
var ErrNotFound = errors.New("record not found")

// notFound translates gorm's sentinel so callers never import gorm just
// to check a lookup miss.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
