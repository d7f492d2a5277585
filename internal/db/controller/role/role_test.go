package role

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/db/controller/permission"
	"github.com/contentdeck/contentdeck/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	require.NoError(t, db.AutoMigrate(
		&models.Permission{},
		&models.Role{},
		&models.RolePermission{},
		&models.AccessRule{},
	))

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		roleName      string
		seedName      string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			roleName:      "editor",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			roleName:      "",
			expectedError: ErrRoleNameEmpty,
		},
		{
			name:     "new role",
			dbParam:  db,
			roleName: "editor",
		},
		{
			name:          "duplicate name",
			dbParam:       db,
			roleName:      "editor",
			seedName:      "editor",
			expectedError: ErrRoleAlreadyExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM roles")
			}

			if tc.seedName != "" {
				require.NoError(t, tc.dbParam.Create(&models.Role{Name: tc.seedName}).Error)
			}

			role, err := Create(tc.dbParam, tc.roleName, "", false)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, role)
			} else {
				require.NoError(t, err)
				require.NotNil(t, role)
				assert.Equal(t, tc.roleName, role.Name)
				assert.NotZero(t, role.ID)
			}
		})
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Role{Name: "editor"}).Error)

	role, err := Get(db, "editor")
	require.NoError(t, err)
	assert.Equal(t, "editor", role.Name)

	// names are case-sensitive
	_, err = Get(db, "Editor")
	require.ErrorIs(t, err, ErrRoleNotFound)

	_, err = Get(db, "")
	require.ErrorIs(t, err, ErrRoleNameEmpty)
}

func TestGrantPermissionIdempotent(t *testing.T) {
	db := setupTestDB(t)

	role, err := Create(db, "editor", "", false)
	require.NoError(t, err)

	perm, err := permission.Create(db, "content.publish", "")
	require.NoError(t, err)

	// grant twice, expect exactly one mapping
	require.NoError(t, GrantPermission(db, role.ID, perm.ID))
	require.NoError(t, GrantPermission(db, role.ID, perm.ID))

	var count int64
	require.NoError(t, db.Model(&models.RolePermission{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	has, err := HasPermission(db, role.ID, perm.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestGrantPermissionMissingEnds(t *testing.T) {
	db := setupTestDB(t)

	role, err := Create(db, "editor", "", false)
	require.NoError(t, err)

	perm, err := permission.Create(db, "content.publish", "")
	require.NoError(t, err)

	err = GrantPermission(db, 9999, perm.ID)
	require.ErrorIs(t, err, ErrRoleNotFound)

	err = GrantPermission(db, role.ID, 9999)
	require.ErrorIs(t, err, permission.ErrPermissionNotFound)
}

func TestRevokePermissionIdempotent(t *testing.T) {
	db := setupTestDB(t)

	role, err := Create(db, "editor", "", false)
	require.NoError(t, err)

	perm, err := permission.Create(db, "content.publish", "")
	require.NoError(t, err)

	require.NoError(t, GrantPermission(db, role.ID, perm.ID))

	// revoke twice, second is a no-op
	require.NoError(t, RevokePermission(db, role.ID, perm.ID))
	require.NoError(t, RevokePermission(db, role.ID, perm.ID))

	has, err := HasPermission(db, role.ID, perm.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestPermissions(t *testing.T) {
	db := setupTestDB(t)

	role, err := Create(db, "editor", "", false)
	require.NoError(t, err)

	publish, err := permission.Create(db, "content.publish", "")
	require.NoError(t, err)
	read, err := permission.Create(db, "content.read", "")
	require.NoError(t, err)

	require.NoError(t, GrantPermission(db, role.ID, publish.ID))
	require.NoError(t, GrantPermission(db, role.ID, read.ID))

	perms, err := Permissions(db, role.ID)
	require.NoError(t, err)
	require.Len(t, perms, 2)
	assert.Equal(t, "content.publish", perms[0].Code)
	assert.Equal(t, "content.read", perms[1].Code)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	role, err := Create(db, "editor", "", false)
	require.NoError(t, err)

	read, err := permission.Create(db, "content.read", "")
	require.NoError(t, err)
	require.NoError(t, GrantPermission(db, role.ID, read.ID))

	require.NoError(t, db.Create(&models.AccessRule{UserID: "alice", RoleID: role.ID}).Error)

	require.NoError(t, Delete(db, "editor"))

	_, err = Get(db, "editor")
	assert.ErrorIs(t, err, ErrRoleNotFound)

	// mappings and rules go with the role
	var mappings int64
	require.NoError(t, db.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&mappings).Error)
	assert.Zero(t, mappings)

	var rules int64
	require.NoError(t, db.Model(&models.AccessRule{}).Where("role_id = ?", role.ID).Count(&rules).Error)
	assert.Zero(t, rules)
}

func TestDeleteProtections(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, "platform-admin", "", true)
	require.NoError(t, err)

	assert.ErrorIs(t, Delete(db, "platform-admin"), ErrRoleIsSystem)
	assert.ErrorIs(t, Delete(db, "ghost"), ErrRoleNotFound)
	assert.ErrorIs(t, Delete(nil, "editor"), ErrDBNil)
}
