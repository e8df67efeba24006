package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackLifecycle(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.seedAdmin(t)
	tokenA, _ := env.signupStudent(t, "a@bitmesra.ac.in", "BTECH/10001/21", intPtr(4), "12")
	tokenB, _ := env.signupStudent(t, "b@bitmesra.ac.in", "BTECH/10002/21", nil, "")

	complaint := fileComplaint(t, env, tokenA, gin.H{
		"type": "Hostel", "subType": "Window Glass", "description": "cracked pane",
		"hostelNo": 4, "roomNo": "12",
	})
	shareToken := complaint["token"].(string)

	// Another student cannot rate it.
	w := env.doJSON(t, http.MethodPost, "/api/feedback", tokenB, gin.H{
		"complaintToken": shareToken,
		"rating":         1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Unknown complaint.
	w = env.doJSON(t, http.MethodPost, "/api/feedback", tokenA, gin.H{
		"complaintToken": "CMP-NOPE-FFFFFF",
		"rating":         3,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Rating outside 1..5.
	w = env.doJSON(t, http.MethodPost, "/api/feedback", tokenA, gin.H{
		"complaintToken": shareToken,
		"rating":         6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The owner rates it.
	w = env.doJSON(t, http.MethodPost, "/api/feedback", tokenA, gin.H{
		"complaintToken": shareToken,
		"rating":         5,
		"comments":       "fixed quickly",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Admin listing carries the average.
	w = env.doJSON(t, http.MethodGet, "/api/feedback", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, float64(5), out["averageRating"])
	entries := out["feedback"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, shareToken, entry["complaintToken"])
	assert.Equal(t, float64(5), entry["rating"])

	// The student sees their own.
	w = env.doJSON(t, http.MethodGet, "/api/feedback/student", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["feedback"].([]any), 1)

	w = env.doJSON(t, http.MethodGet, "/api/feedback/student", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["feedback"].([]any), 0)

	// Students cannot read the admin listing.
	w = env.doJSON(t, http.MethodGet, "/api/feedback", tokenA, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
