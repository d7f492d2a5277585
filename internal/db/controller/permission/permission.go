// Package permission provides CRUD operations for the permission catalog.
package permission

import (
	"errors"

	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/db/models"
)

const (
	codeQueryPattern = "code = ?"
)

var (
	// ErrPermissionNotFound is returned when a permission is not found.
	ErrPermissionNotFound = errors.New("permission not found")
	// ErrPermissionCodeEmpty is returned when attempting to create a permission with an empty code.
	ErrPermissionCodeEmpty = errors.New("permission code cannot be empty")
	// ErrPermissionAlreadyExists is returned when attempting to create a permission whose code is taken.
	ErrPermissionAlreadyExists = errors.New("permission already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a permission by its code.
func Get(db *gorm.DB, code string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if code == "" {
		return nil, ErrPermissionCodeEmpty
	}

	var perm models.Permission
	result := db.Where(codeQueryPattern, code).First(&perm)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, result.Error
	}

	return &perm, nil
}

// GetByID retrieves a permission by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var perm models.Permission
	result := db.First(&perm, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, result.Error
	}

	return &perm, nil
}

// GetAll retrieves all permissions ordered by code.
func GetAll(db *gorm.DB) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var perms []models.Permission
	result := db.Order("code").Find(&perms)
	if result.Error != nil {
		return nil, result.Error
	}

	return perms, nil
}

// Create creates a new permission. The code must be unique across the catalog.
func Create(db *gorm.DB, code, description string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if code == "" {
		return nil, ErrPermissionCodeEmpty
	}

	// Check if the code is already taken
	var existing models.Permission
	result := db.Where(codeQueryPattern, code).First(&existing)
	if result.Error == nil {
		return nil, ErrPermissionAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	perm := &models.Permission{
		Code:        code,
		Description: description,
	}

	result = db.Create(perm)
	if result.Error != nil {
		return nil, result.Error
	}

	return perm, nil
}

// Ensure creates the permission if missing, or refreshes its description.
// Used by catalog seeding; permissions are never structurally mutated otherwise.
func Ensure(db *gorm.DB, code, description string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if code == "" {
		return nil, ErrPermissionCodeEmpty
	}

	var perm models.Permission
	result := db.Where(codeQueryPattern, code).First(&perm)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return Create(db, code, description)
	}
	if result.Error != nil {
		return nil, result.Error
	}

	if perm.Description != description {
		perm.Description = description
		if result = db.Save(&perm); result.Error != nil {
			return nil, result.Error
		}
	}

	return &perm, nil
}

// UpdateDescription updates the description of an existing permission.
// The code itself is immutable; external systems reference it.
func UpdateDescription(db *gorm.DB, id uint, description string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var perm models.Permission
	result := db.First(&perm, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, result.Error
	}

	perm.Description = description
	result = db.Save(&perm)
	if result.Error != nil {
		return nil, result.Error
	}

	return &perm, nil
}
