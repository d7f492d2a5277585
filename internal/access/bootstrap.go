package access

import (
	"sync"

	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/db/controller/accessrule"
	"github.com/contentdeck/contentdeck/internal/db/controller/permission"
	"github.com/contentdeck/contentdeck/internal/db/controller/role"
	"github.com/contentdeck/contentdeck/internal/db/models"
)

// ReservedAdminRole is the name of the system role created during
// bootstrap. It cannot be created, renamed, or deleted through the
// management API.
const ReservedAdminRole = "platform-admin"

// bootstrapMu serialises bootstrap attempts within this process; the
// surrounding transaction protects against other processes.
var bootstrapMu sync.Mutex

// BootstrapFirstUser grants a user unrestricted platform management. It
// creates the reserved admin role if missing, attaches the full permission
// catalog to it, and binds the user to it with an unscoped rule.
//
// The grant only succeeds while the rule store is empty. Once any access
// rule exists the call returns ErrAlreadyBootstrapped; the count check and
// the insert run in one transaction so that concurrent attempts produce
// exactly one admin.
func (s *Service) BootstrapFirstUser(userID string) error {
	if s.db == nil {
		return ErrDBNil
	}
	if userID == "" {
		return ErrUserIDEmpty
	}

	bootstrapMu.Lock()
	defer bootstrapMu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		count, err := accessrule.Count(tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyBootstrapped
		}

		adminRole, err := ensureAdminRole(tx)
		if err != nil {
			return err
		}

		_, err = accessrule.Create(tx, userID, adminRole.ID, "", "", "", "")
		return err
	})
}

// AllowSetup reports whether a user may perform management operations
// under the setup bypass: either no access rules exist yet, or the user
// holds the platform management permission somewhere.
func (s *Service) AllowSetup(userID string) (bool, error) {
	if s.db == nil {
		return false, ErrDBNil
	}

	count, err := accessrule.Count(s.db)
	if err != nil {
		return false, err
	}
	if count == 0 {
		return true, nil
	}

	return s.CheckAccess(userID, PermPlatformManage, Scope{})
}

// ensureAdminRole creates the reserved role if needed and grants it every
// known permission, tolerating a partially granted role from an earlier
// interrupted bootstrap. The catalog is ensured first so the offline
// bootstrap command works on a database the daemon never seeded.
func ensureAdminRole(tx *gorm.DB) (*models.Role, error) {
	adminRole, err := role.Get(tx, ReservedAdminRole)
	if err == role.ErrRoleNotFound {
		adminRole, err = role.Create(tx, ReservedAdminRole, "Platform administrators", true)
	}
	if err != nil {
		return nil, err
	}

	for _, entry := range Catalog() {
		if _, err := permission.Ensure(tx, entry.Code, entry.Description); err != nil {
			return nil, err
		}
	}

	var perms []models.Permission
	if err := tx.Find(&perms).Error; err != nil {
		return nil, err
	}
	for _, p := range perms {
		if err := role.GrantPermission(tx, adminRole.ID, p.ID); err != nil {
			return nil, err
		}
	}

	return adminRole, nil
}
