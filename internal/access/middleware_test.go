package access

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires a single guarded route behind a stub authentication
// middleware that injects the given user id.
func newTestApp(userID string, guard fiber.Handler) *fiber.App {
	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(LocalsUserKey, userID)
		}
		return c.Next()
	})
	app.Get("/guarded", guard, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return app
}

func TestRequirePermission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	editor := grantRole(t, db, "editor", PermContentUpdate)
	bindRule(t, db, "alice", editor.ID, Scope{ProjectID: "proj-1"})

	testCases := []struct {
		name           string
		userID         string
		target         string
		expectedStatus int
	}{
		{
			name:           "unauthenticated",
			userID:         "",
			target:         "/guarded",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "allowed inside scope",
			userID:         "alice",
			target:         "/guarded?projectId=proj-1",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "denied outside scope",
			userID:         "alice",
			target:         "/guarded?projectId=proj-2",
			expectedStatus: fiber.StatusForbidden,
		},
		{
			name:           "denied without rules",
			userID:         "mallory",
			target:         "/guarded?projectId=proj-1",
			expectedStatus: fiber.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(tc.userID, RequirePermission(svc, PermContentUpdate))

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRequireSetup(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	// empty store: any authenticated caller passes
	app := newTestApp("anyone", RequireSetup(svc))
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, svc.BootstrapFirstUser("founder"))

	app = newTestApp("founder", RequireSetup(svc))
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	app = newTestApp("anyone", RequireSetup(svc))
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
