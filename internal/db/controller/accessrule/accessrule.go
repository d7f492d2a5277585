// Package accessrule provides CRUD operations for access rules.
// Rules are immutable once created; there is no update operation, only
// creation and revocation.
package accessrule

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/db/controller/role"
	"github.com/contentdeck/contentdeck/internal/db/models"
)

var (
	// ErrRuleNotFound is returned when a rule is not found.
	ErrRuleNotFound = errors.New("access rule not found")
	// ErrUserIDEmpty is returned when attempting to create a rule without a user.
	ErrUserIDEmpty = errors.New("access rule user id cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create creates a new access rule binding a user to a role, optionally
// narrowed by the scope fields. The role must exist at creation time; it is
// not re-verified afterwards. ContentStatus is stored lower-case so matching
// can stay case-insensitive.
func Create(
	db *gorm.DB,
	userID string,
	roleID uint,
	projectID, environmentID, schemaID, contentStatus string,
) (*models.AccessRule, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if userID == "" {
		return nil, ErrUserIDEmpty
	}

	// the role reference must resolve at creation time
	if _, err := role.GetByID(db, roleID); err != nil {
		return nil, err
	}

	rule := &models.AccessRule{
		UserID:        userID,
		RoleID:        roleID,
		ProjectID:     projectID,
		EnvironmentID: environmentID,
		SchemaID:      schemaID,
		ContentStatus: strings.ToLower(contentStatus),
	}

	result := db.Create(rule)
	if result.Error != nil {
		return nil, result.Error
	}

	return rule, nil
}

// GetByID retrieves a rule by its ID.
func GetByID(db *gorm.DB, id uint) (*models.AccessRule, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rule models.AccessRule
	result := db.First(&rule, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, result.Error
	}

	return &rule, nil
}

// GetByUser retrieves all rules held by a user.
func GetByUser(db *gorm.DB, userID string) ([]models.AccessRule, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if userID == "" {
		return nil, ErrUserIDEmpty
	}

	var rules []models.AccessRule
	result := db.Where("user_id = ?", userID).Find(&rules)
	if result.Error != nil {
		return nil, result.Error
	}

	return rules, nil
}

// Count returns the number of access rules in the whole system.
// A zero count is the "unbootstrapped" state.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	result := db.Model(&models.AccessRule{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Delete revokes a rule by ID.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.AccessRule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}
