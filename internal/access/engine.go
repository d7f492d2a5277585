package access

import (
	"errors"

	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/db/controller/accessrule"
	"github.com/contentdeck/contentdeck/internal/db/controller/permission"
	"github.com/contentdeck/contentdeck/internal/db/controller/role"
	"github.com/contentdeck/contentdeck/internal/db/models"
)

// Service evaluates permission checks against the rule store. All methods
// are safe for concurrent use; the service holds no mutable state beyond
// the database handle.
type Service struct {
	db *gorm.DB
}

// NewService creates an access service backed by the given database.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CheckAccess reports whether a user holds a permission in a scope. The
// decision is the most permissive over all of the user's access rules: a
// single applicable rule whose role carries the permission is enough.
//
// A permission code that is not in the catalog is denied rather than
// rejected; only infrastructure failures produce a non-nil error, and the
// boolean is false whenever the error is non-nil.
func (s *Service) CheckAccess(userID, permissionCode string, scope Scope) (bool, error) {
	if s.db == nil {
		return false, ErrDBNil
	}
	if userID == "" {
		return false, ErrUserIDEmpty
	}
	if permissionCode == "" {
		return false, ErrPermissionCodeEmpty
	}

	perm, err := permission.Get(s.db, permissionCode)
	if err != nil {
		if errors.Is(err, permission.ErrPermissionNotFound) {
			// unknown codes deny instead of erroring
			return false, nil
		}
		return false, err
	}

	rules, err := accessrule.GetByUser(s.db, userID)
	if err != nil {
		return false, err
	}

	for _, r := range rules {
		if !Applies(ruleScope(r), scope) {
			continue
		}

		held, err := role.HasPermission(s.db, r.RoleID, perm.ID)
		if err != nil {
			return false, err
		}
		if held {
			return true, nil
		}
	}

	return false, nil
}

func ruleScope(r models.AccessRule) Scope {
	return Scope{
		ProjectID:     r.ProjectID,
		EnvironmentID: r.EnvironmentID,
		SchemaID:      r.SchemaID,
		ContentStatus: r.ContentStatus,
	}
}
