package controllers_test

import (
	"fmt"
	"testing"

	"project/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroupAddsOwner(t *testing.T) {
	app, _ := setupApp(t)
	token, userID := registerUser(t, app, "owner@example.com", "Owner")

	groupID := createGroup(t, app, token, map[string]interface{}{
		"title":      "Calculus crew",
		"subject_id": 1,
	})

	resp, members := doJSONList(t, app, "GET", fmt.Sprintf("/groups/%d/members", groupID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, members, 1)
	assert.EqualValues(t, userID, members[0]["user_id"])
	assert.Equal(t, models.RoleOwner, members[0]["role"])
	assert.Equal(t, "Owner", members[0]["display_name"])
}

func TestCreateGroupValidation(t *testing.T) {
	app, _ := setupApp(t)
	token, _ := registerUser(t, app, "owner@example.com", "Owner")

	resp, _ := doJSON(t, app, "POST", "/groups", token, map[string]interface{}{
		"subject_id": 1,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "missing title")

	resp, _ = doJSON(t, app, "POST", "/groups", token, map[string]interface{}{
		"title": "No subject",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "missing subject_id")

	resp, _ = doJSON(t, app, "POST", "/groups", token, map[string]interface{}{
		"title":      "Bad level",
		"subject_id": 1,
		"level":      "expert",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "invalid level")

	resp, _ = doJSON(t, app, "POST", "/groups", token, map[string]interface{}{
		"title":       "Bad capacity",
		"subject_id":  1,
		"max_members": -2,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "negative max_members")
}

func TestCreateGroupDefaults(t *testing.T) {
	app, db := setupApp(t)
	token, _ := registerUser(t, app, "owner@example.com", "Owner")

	groupID := createGroup(t, app, token, map[string]interface{}{
		"title":      "Defaults",
		"subject_id": 2,
	})

	var group models.Group
	require.NoError(t, db.First(&group, groupID).Error)
	assert.Equal(t, models.LevelMixed, group.Level)
	assert.Equal(t, models.DefaultMaxMembers, group.MaxMembers)
}

func TestListGroupsNewestFirst(t *testing.T) {
	app, db := setupApp(t)
	token, _ := registerUser(t, app, "owner@example.com", "Owner")

	first := createGroup(t, app, token, map[string]interface{}{
		"title":      "First",
		"subject_id": 1,
	})
	second := createGroup(t, app, token, map[string]interface{}{
		"title":      "Second",
		"subject_id": 1,
	})
	// created_at has second precision on some drivers; force distinct
	// ordering keys for a deterministic assertion
	require.NoError(t, db.Exec("UPDATE groups SET created_at = datetime(created_at, '-1 hour') WHERE id = ?", first).Error)

	resp, list := doJSONList(t, app, "GET", "/groups", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, list, 2)
	assert.EqualValues(t, second, list[0]["id"])
	assert.EqualValues(t, first, list[1]["id"])
	assert.Equal(t, "Owner", list[0]["owner_name"])
	assert.NotEmpty(t, list[0]["subject_name"])
}

func TestJoinGroupEndpoint(t *testing.T) {
	app, _ := setupApp(t)
	ownerToken, _ := registerUser(t, app, "owner@example.com", "Owner")
	joinerToken, _ := registerUser(t, app, "joiner@example.com", "Joiner")

	groupID := createGroup(t, app, ownerToken, map[string]interface{}{
		"title":      "Open group",
		"subject_id": 1,
	})

	resp, body := doJSON(t, app, "POST", fmt.Sprintf("/groups/%d/join", groupID), joinerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])

	// Second attempt is a terminal rejection
	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/groups/%d/join", groupID), joinerToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestJoinMissingGroup(t *testing.T) {
	app, _ := setupApp(t)
	token, _ := registerUser(t, app, "joiner@example.com", "Joiner")

	resp, _ := doJSON(t, app, "POST", "/groups/9999/join", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestJoinFullGroupEndpoint(t *testing.T) {
	app, _ := setupApp(t)
	ownerToken, _ := registerUser(t, app, "owner@example.com", "Owner")
	joinerToken, _ := registerUser(t, app, "joiner@example.com", "Joiner")

	// max_members=1: the owner occupies the only seat
	groupID := createGroup(t, app, ownerToken, map[string]interface{}{
		"title":       "Solo group",
		"subject_id":  1,
		"max_members": 1,
	})

	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/groups/%d/join", groupID), joinerToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
