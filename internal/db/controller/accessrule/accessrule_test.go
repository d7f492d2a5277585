package accessrule

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/contentdeck/contentdeck/internal/db/controller/role"
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

	editor, err := role.Create(db, "editor", "", false)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		userID        string
		roleID        uint
		contentStatus string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			userID:        "user-1",
			roleID:        editor.ID,
			expectedError: ErrDBNil,
		},
		{
			name:          "empty user id",
			dbParam:       db,
			userID:        "",
			roleID:        editor.ID,
			expectedError: ErrUserIDEmpty,
		},
		{
			name:          "dangling role",
			dbParam:       db,
			userID:        "user-1",
			roleID:        9999,
			expectedError: role.ErrRoleNotFound,
		},
		{
			name:    "global rule",
			dbParam: db,
			userID:  "user-1",
			roleID:  editor.ID,
		},
		{
			name:          "content status stored lower-case",
			dbParam:       db,
			userID:        "user-1",
			roleID:        editor.ID,
			contentStatus: "Published",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rule, err := Create(tc.dbParam, tc.userID, tc.roleID, "", "", "", tc.contentStatus)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, rule)
			} else {
				require.NoError(t, err)
				require.NotNil(t, rule)
				assert.Equal(t, tc.userID, rule.UserID)
				assert.Equal(t, tc.roleID, rule.RoleID)
				assert.NotZero(t, rule.ID)

				if tc.contentStatus != "" {
					assert.Equal(t, "published", rule.ContentStatus)
				}
			}
		})
	}
}

func TestGetByUser(t *testing.T) {
	db := setupTestDB(t)

	editor, err := role.Create(db, "editor", "", false)
	require.NoError(t, err)
	reviewer, err := role.Create(db, "reviewer", "", false)
	require.NoError(t, err)

	_, err = Create(db, "user-1", editor.ID, "", "", "", "")
	require.NoError(t, err)
	_, err = Create(db, "user-1", reviewer.ID, "proj-1", "", "", "")
	require.NoError(t, err)
	_, err = Create(db, "user-2", editor.ID, "", "", "", "")
	require.NoError(t, err)

	rules, err := GetByUser(db, "user-1")
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	rules, err = GetByUser(db, "user-3")
	require.NoError(t, err)
	assert.Empty(t, rules)

	_, err = GetByUser(db, "")
	require.ErrorIs(t, err, ErrUserIDEmpty)
}

func TestCountAndDelete(t *testing.T) {
	db := setupTestDB(t)

	count, err := Count(db)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	editor, err := role.Create(db, "editor", "", false)
	require.NoError(t, err)

	rule, err := Create(db, "user-1", editor.ID, "", "", "", "")
	require.NoError(t, err)

	count, err = Count(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, Delete(db, rule.ID))

	count, err = Count(db)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// deleting again reports not found
	require.ErrorIs(t, Delete(db, rule.ID), ErrRuleNotFound)
}
