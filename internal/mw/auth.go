package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campus-complaint-backend/internal/auth"
	"campus-complaint-backend/internal/model"
	"campus-complaint-backend/internal/store"
)

// CookieName is the HTTP-only cookie the token may arrive in as an
// alternative to the Authorization header.
const CookieName = "token"

const principalKey = "principal"

// Principal is the authenticated caller, re-fetched from the store on every
// request so account mutations and deletions take effect immediately.
// Exactly one of the role fields is set.
type Principal struct {
	Role      string
	Student   *model.Student
	Authority *model.Authority
	Admin     *model.Admin
}

// ID returns the account id of whichever role field is set.
func (p *Principal) ID() uint {
	switch p.Role {
	case auth.RoleStudent:
		return p.Student.ID
	case auth.RoleAuthority:
		return p.Authority.ID
	case auth.RoleAdmin:
		return p.Admin.ID
	}
	return 0
}

// PrincipalFrom retrieves the principal stored by the Auth middleware.
func PrincipalFrom(c *gin.Context) *Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	return v.(*Principal)
}

// Auth validates the bearer-or-cookie token, checks the caller's role
// against the route's allowed set, and loads the fresh account record.
func Auth(s store.Store, tokens *auth.TokenIssuer, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "message": "Not authorized to access this route"})
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		if len(allowed) > 0 && !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"success": false, "message": "Not authorized to access this route"})
			return
		}

		p := &Principal{Role: claims.Role}
		ctx := c.Request.Context()
		switch claims.Role {
		case auth.RoleStudent:
			p.Student, err = s.StudentByID(ctx, claims.ID)
		case auth.RoleAuthority:
			p.Authority, err = s.AuthorityByID(ctx, claims.ID)
		case auth.RoleAdmin:
			p.Admin, err = s.AdminByID(ctx, claims.ID)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "message": "Invalid role"})
			return
		}
		if err != nil {
			// The account was deleted after the token was issued.
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "message": "User not found"})
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}
