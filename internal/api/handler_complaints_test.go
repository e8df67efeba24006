package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-complaint-backend/internal/model"
)

func fileComplaint(t *testing.T, env *testEnv, token string, body gin.H) map[string]any {
	t.Helper()
	w := env.doJSON(t, http.MethodPost, "/api/complaints", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	complaint, ok := decode(t, w)["complaint"].(map[string]any)
	require.True(t, ok)
	return complaint
}

func TestCreateComplaintAssignsHostelClerk(t *testing.T) {
	env := newTestEnv(t)
	_, clerk := env.seedAuthority(t, model.DesignationHostelClerk, intPtr(4))
	token, _ := env.signupStudent(t, "rahul@bitmesra.ac.in", "BTECH/10001/21", intPtr(4), "12")

	complaint := fileComplaint(t, env, token, gin.H{
		"type":        "Hostel",
		"subType":     "Electrical",
		"description": "fan not working",
		"hostelNo":    4,
		"roomNo":      "12",
	})

	assert.Regexp(t, `^CMP-`, complaint["token"])
	assert.Equal(t, "Pending", complaint["status"])
	assignee, ok := complaint["assignedTo"].(map[string]any)
	require.True(t, ok, "complaint should be assigned")
	assert.Equal(t, clerk.Name, assignee["name"])
}

func TestCreateComplaintHostelRequiresRoom(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signupStudent(t, "rahul@bitmesra.ac.in", "BTECH/10001/21", intPtr(4), "12")

	w := env.doJSON(t, http.MethodPost, "/api/complaints", token, gin.H{
		"type":        "Hostel",
		"subType":     "Electrical",
		"description": "fan not working",
		"hostelNo":    4,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateComplaintNetworkRejectsHostelFields(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signupStudent(t, "rahul@bitmesra.ac.in", "BTECH/10001/21", intPtr(4), "12")

	for _, body := range []gin.H{
		{"type": "Network", "subType": "Internet", "description": "wifi down", "hostelNo": 4},
		{"type": "College", "subType": "Internet", "description": "lab wifi down", "roomNo": "12"},
	} {
		w := env.doJSON(t, http.MethodPost, "/api/complaints", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}
}

func TestCreateComplaintInternetSubTypeRoutesToNetworkDept(t *testing.T) {
	env := newTestEnv(t)
	_, network := env.seedAuthority(t, model.DesignationNetworkDept, nil)
	token, _ := env.signupStudent(t, "rahul@bitmesra.ac.in", "BTECH/10001/21", nil, "")

	complaint := fileComplaint(t, env, token, gin.H{
		"type":        "College",
		"subType":     "Internet",
		"description": "library wifi keeps dropping",
	})

	assignee, ok := complaint["assignedTo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, network.Name, assignee["name"])
	// Hostel fields never survive on network-related complaints.
	assert.NotContains(t, complaint, "hostelNo")
}

func TestStudentComplaintsListsOwnOnly(t *testing.T) {
	env := newTestEnv(t)
	tokenA, _ := env.signupStudent(t, "a@bitmesra.ac.in", "BTECH/10001/21", intPtr(4), "12")
	tokenB, _ := env.signupStudent(t, "b@bitmesra.ac.in", "BTECH/10002/21", intPtr(5), "7")

	fileComplaint(t, env, tokenA, gin.H{"type": "Hostel", "subType": "Plumbing", "description": "leaky tap", "hostelNo": 4, "roomNo": "12"})
	fileComplaint(t, env, tokenB, gin.H{"type": "College", "subType": "Other", "description": "broken bench"})

	w := env.doJSON(t, http.MethodGet, "/api/complaints/student", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	complaints := decode(t, w)["complaints"].([]any)
	require.Len(t, complaints, 1)
	assert.Equal(t, "Plumbing", complaints[0].(map[string]any)["subType"])
}

func TestComplaintByTokenOwnership(t *testing.T) {
	env := newTestEnv(t)
	tokenA, _ := env.signupStudent(t, "a@bitmesra.ac.in", "BTECH/10001/21", intPtr(4), "12")
	tokenB, _ := env.signupStudent(t, "b@bitmesra.ac.in", "BTECH/10002/21", nil, "")

	complaint := fileComplaint(t, env, tokenA, gin.H{"type": "Hostel", "subType": "Fan", "description": "fan rattles", "hostelNo": 4, "roomNo": "12"})
	shareToken := complaint["token"].(string)

	w := env.doJSON(t, http.MethodGet, "/api/complaints/"+shareToken, tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/complaints/"+shareToken, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/complaints/CMP-NOPE-FFFFFF", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorityQueueAndStatusUpdate(t *testing.T) {
	env := newTestEnv(t)
	clerkToken, clerk := env.seedAuthority(t, model.DesignationHostelClerk, intPtr(4))
	studentToken, _ := env.signupStudent(t, "rahul@bitmesra.ac.in", "BTECH/10001/21", intPtr(4), "12")

	complaint := fileComplaint(t, env, studentToken, gin.H{
		"type": "Hostel", "subType": "Electrical", "description": "socket sparking",
		"hostelNo": 4, "roomNo": "12",
	})
	shareToken := complaint["token"].(string)

	// The clerk sees the complaint in its queue.
	w := env.doJSON(t, http.MethodGet, "/api/complaints/authority", clerkToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	queue := decode(t, w)["complaints"].([]any)
	require.Len(t, queue, 1)
	id := uint(queue[0].(map[string]any)["id"].(float64))

	// Resolve it.
	w = env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/complaints/%d", id), clerkToken, gin.H{
		"status":  "Resolved",
		"remarks": "fixed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)["complaint"].(map[string]any)
	assert.Equal(t, "Resolved", updated["status"])
	assert.Equal(t, "fixed", updated["remarks"])
	assert.Equal(t, clerk.Name, updated["assignedTo"].(map[string]any)["name"])

	// The student sees the resolution on the shared token.
	w = env.doJSON(t, http.MethodGet, "/api/complaints/"+shareToken, studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode(t, w)["complaint"].(map[string]any)
	assert.Equal(t, "Resolved", fetched["status"])

	// The worker pool mails the resolution alongside the signup OTP mail.
	assert.Eventually(t, func() bool {
		env.mail.mu.Lock()
		defer env.mail.mu.Unlock()
		return len(env.mail.bodies["rahul@bitmesra.ac.in"]) >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUpdateStatusValidation(t *testing.T) {
	env := newTestEnv(t)
	clerkToken, _ := env.seedAuthority(t, model.DesignationHostelClerk, intPtr(4))

	w := env.doJSON(t, http.MethodPut, "/api/complaints/999999", clerkToken, gin.H{"status": "Resolved"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	studentToken, _ := env.signupStudent(t, "rahul@bitmesra.ac.in", "BTECH/10001/21", intPtr(4), "12")
	complaint := fileComplaint(t, env, studentToken, gin.H{
		"type": "Hostel", "subType": "Bulb", "description": "bulb fused",
		"hostelNo": 4, "roomNo": "12",
	})

	w = env.doJSON(t, http.MethodGet, "/api/complaints/"+complaint["token"].(string), clerkToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	id := uint(decode(t, w)["complaint"].(map[string]any)["id"].(float64))

	w = env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/complaints/%d", id), clerkToken, gin.H{"status": "Escalated"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Students cannot update status.
	w = env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/complaints/%d", id), studentToken, gin.H{"status": "Resolved"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminComplaintFilters(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.seedAdmin(t)
	studentToken, _ := env.signupStudent(t, "rahul@bitmesra.ac.in", "BTECH/10001/21", intPtr(4), "12")

	fileComplaint(t, env, studentToken, gin.H{"type": "Hostel", "subType": "Chair", "description": "broken chair", "hostelNo": 4, "roomNo": "12"})
	fileComplaint(t, env, studentToken, gin.H{"type": "College", "subType": "Network", "description": "lan port dead"})

	w := env.doJSON(t, http.MethodGet, "/api/complaints/admin/all", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["complaints"].([]any), 2)

	// type=Network also matches subType=Network.
	w = env.doJSON(t, http.MethodGet, "/api/complaints/admin/all?type=Network", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	filtered := decode(t, w)["complaints"].([]any)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Network", filtered[0].(map[string]any)["subType"])

	// No authority exists, so both are unassigned.
	w = env.doJSON(t, http.MethodGet, "/api/complaints/admin/all?assigned=false", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["complaints"].([]any), 2)

	w = env.doJSON(t, http.MethodGet, "/api/complaints/admin/all?hostelNo=99", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Students are not allowed in.
	w = env.doJSON(t, http.MethodGet, "/api/complaints/admin/all", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
