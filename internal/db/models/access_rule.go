package models

import "time"

// AccessRule binds one user to one role, optionally restricted to a scope.
// Each scope column is independently optional: an empty value is a wildcard for
// that dimension. A rule with all four scope columns empty is a global grant.
// Rules are immutable once created; revocation deletes the row.
type AccessRule struct {
	// ID is the unique identifier for the rule.
	ID uint `gorm:"primaryKey"`
	// UserID is an opaque reference to an external identity; it is not owned here.
	UserID string `gorm:"size:255;not null;index"`
	// RoleID is the ID of the role this rule grants.
	RoleID uint `gorm:"not null;index"`
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// ProjectID narrows the grant to one project when non-empty.
	ProjectID string `gorm:"size:255"`
	// EnvironmentID narrows the grant to one environment when non-empty.
	EnvironmentID string `gorm:"size:255"`
	// SchemaID narrows the grant to one content schema when non-empty.
	SchemaID string `gorm:"size:255"`
	// ContentStatus narrows the grant to one content lifecycle status when
	// non-empty (stored lower-case, matched case-insensitively).
	ContentStatus string `gorm:"size:100"`
	// CreatedAt is the timestamp when the rule was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the AccessRule model.
// This overrides GORM's default pluralized table naming.
func (AccessRule) TableName() string {
	return "access_rules"
}
