package mw

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-complaint-backend/internal/auth"
	"campus-complaint-backend/internal/model"
	"campus-complaint-backend/internal/store"
)

func setupAuthTest(t *testing.T) (store.Store, *auth.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Student{}, &model.Authority{}, &model.Admin{},
		&model.Complaint{}, &model.Feedback{}, &model.PushSubscription{},
	))

	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return store.NewGormStore(db), tokens
}

func protectedRouter(s store.Store, tokens *auth.TokenIssuer, roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/protected", Auth(s, tokens, roles...), func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"role": p.Role, "id": p.ID()})
	})
	return r
}

func get(r *gin.Engine, header, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", "Bearer "+header)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingToken(t *testing.T) {
	s, tokens := setupAuthTest(t)
	r := protectedRouter(s, tokens)

	w := get(r, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	s, tokens := setupAuthTest(t)
	r := protectedRouter(s, tokens)

	w := get(r, "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsBearerAndCookie(t *testing.T) {
	s, tokens := setupAuthTest(t)
	student := &model.Student{
		Name: "S", RollNo: "R1", Email: "s@bitmesra.ac.in", Mobile: "9876543210",
		Session: "2021-25", Department: "CSE", PasswordHash: "x", IsVerified: true,
	}
	require.NoError(t, s.CreateStudent(context.Background(), student))

	token, err := tokens.IssueStudent(student)
	require.NoError(t, err)

	r := protectedRouter(s, tokens, auth.RoleStudent)

	w := get(r, token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthEnforcesRoleSet(t *testing.T) {
	s, tokens := setupAuthTest(t)
	student := &model.Student{
		Name: "S", RollNo: "R1", Email: "s@bitmesra.ac.in", Mobile: "9876543210",
		Session: "2021-25", Department: "CSE", PasswordHash: "x", IsVerified: true,
	}
	require.NoError(t, s.CreateStudent(context.Background(), student))

	token, err := tokens.IssueStudent(student)
	require.NoError(t, err)

	r := protectedRouter(s, tokens, auth.RoleAdmin)
	w := get(r, token, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthRefetchesAccount(t *testing.T) {
	s, tokens := setupAuthTest(t)
	student := &model.Student{
		Name: "S", RollNo: "R1", Email: "s@bitmesra.ac.in", Mobile: "9876543210",
		Session: "2021-25", Department: "CSE", PasswordHash: "x", IsVerified: true,
	}
	require.NoError(t, s.CreateStudent(context.Background(), student))

	token, err := tokens.IssueStudent(student)
	require.NoError(t, err)

	r := protectedRouter(s, tokens, auth.RoleStudent)
	w := get(r, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	// Deletion takes effect on the very next request.
	require.NoError(t, s.DeleteStudentCascade(context.Background(), student.ID))
	w = get(r, token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
