package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"project/backend/config"
	"project/backend/internal/testutil"
	"project/backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}
	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded []map[string]interface{}
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// registerUser registers a fresh account through the API and returns the
// session token plus the new user id.
func registerUser(t *testing.T, app *fiber.App, email, displayName string) (string, uint) {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/register", "", map[string]string{
		"email":        email,
		"password":     "password123",
		"display_name": displayName,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	token, ok := body["token"].(string)
	require.True(t, ok, "register response has no token")
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok, "register response has no user")
	id, ok := user["id"].(float64)
	require.True(t, ok, "register response has no user id")

	return token, uint(id)
}

// createGroup creates a group through the API and returns its id.
func createGroup(t *testing.T, app *fiber.App, token string, input map[string]interface{}) uint {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/groups", token, input)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	id, ok := body["groupId"].(float64)
	require.True(t, ok, "create group response has no groupId")
	return uint(id)
}
