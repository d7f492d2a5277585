// Package role provides CRUD operations for roles and their permission sets.
package role

import (
	"errors"

	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/db/controller/permission"
	"github.com/contentdeck/contentdeck/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrRoleNotFound is returned when a role is not found.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameEmpty is returned when attempting to create a role with an empty name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrRoleAlreadyExists is returned when attempting to create a role whose name is taken.
	ErrRoleAlreadyExists = errors.New("role already exists")
	// ErrRoleIsSystem is returned when attempting to delete a system role.
	ErrRoleIsSystem = errors.New("system roles cannot be deleted")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a role by its name. Names are compared case-sensitively.
func Get(db *gorm.DB, name string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	var role models.Role
	result := db.Where(nameQueryPattern, name).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// GetByID retrieves a role by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	result := db.First(&role, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// GetAll retrieves all roles ordered by name.
func GetAll(db *gorm.DB) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	result := db.Order("name").Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// Create creates a new role. The name must be unique across all roles.
func Create(db *gorm.DB, name, description string, isSystem bool) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	// Check if the name is already taken
	var existing models.Role
	result := db.Where(nameQueryPattern, name).First(&existing)
	if result.Error == nil {
		return nil, ErrRoleAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	role := &models.Role{
		Name:        name,
		Description: description,
		IsSystem:    isSystem,
	}

	result = db.Create(role)
	if result.Error != nil {
		return nil, result.Error
	}

	return role, nil
}

// Delete removes a role and its permission mappings. System roles are
// protected. Access rules referencing the role are removed with it.
func Delete(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}

	role, err := Get(db, name)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return ErrRoleIsSystem
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", role.ID).Delete(&models.AccessRule{}).Error; err != nil {
			return err
		}

		return tx.Delete(role).Error
	})
}

// GrantPermission adds a permission to a role's set.
// Granting an already-held permission is a no-op.
func GrantPermission(db *gorm.DB, roleID, permissionID uint) error {
	if db == nil {
		return ErrDBNil
	}

	// both ends of the mapping must exist
	if _, err := GetByID(db, roleID); err != nil {
		return err
	}
	if _, err := permission.GetByID(db, permissionID); err != nil {
		return err
	}

	var existing models.RolePermission
	result := db.Where("role_id = ? AND permission_id = ?", roleID, permissionID).First(&existing)
	if result.Error == nil {
		return nil // already granted
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	return db.Create(&models.RolePermission{
		RoleID:       roleID,
		PermissionID: permissionID,
	}).Error
}

// RevokePermission removes a permission from a role's set.
// Revoking an absent permission is a no-op.
func RevokePermission(db *gorm.DB, roleID, permissionID uint) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := GetByID(db, roleID); err != nil {
		return err
	}

	return db.Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&models.RolePermission{}).Error
}

// Permissions retrieves all permissions held by a role, ordered by code.
func Permissions(db *gorm.DB, roleID uint) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var perms []models.Permission
	result := db.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.code").
		Find(&perms)
	if result.Error != nil {
		return nil, result.Error
	}

	return perms, nil
}

// HasPermission reports whether a role holds a permission.
func HasPermission(db *gorm.DB, roleID, permissionID uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	result := db.Model(&models.RolePermission{}).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
