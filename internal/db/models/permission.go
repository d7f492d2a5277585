package models

import "time"

// Permission represents an atomic, grantable capability in the authorization system.
// Permissions are seeded from the static catalog at process start and are never
// deleted, because their codes are referenced by external systems.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`
	// Code is the unique, stable permission identifier in resource.action format
	// (e.g., "content.publish").
	Code string `gorm:"unique;size:100;not null"`
	// Description provides a human-readable explanation of what this permission grants.
	Description string `gorm:"size:255"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Permission model.
// This overrides GORM's default pluralized table naming.
func (Permission) TableName() string {
	return "permissions"
}
