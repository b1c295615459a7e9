package middleware

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	v1 "github.com/cloudscheduler/console/api/v1"
	"github.com/cloudscheduler/console/internal/user/domain/aggregate"
	"github.com/cloudscheduler/console/internal/user/domain/service"
)

const (
	// TokenHeader carries the access token on authenticated requests.
	TokenHeader = "X-Token"

	ctxUsernameKey = "username"
	ctxRoleKey     = "role"
)

// Auth verifies the access token and stores the caller's identity on the
// request context.
func Auth(users *service.UserDomainService) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		token := string(c.GetHeader(TokenHeader))
		if token == "" {
			v1.HandlerError(c, consts.StatusUnauthorized, v1.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := users.Verify(ctx, token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenRevoked) {
				v1.HandlerError(c, consts.StatusUnauthorized, v1.ErrUnauthorized)
			} else {
				v1.HandlerError(c, consts.StatusInternalServerError, v1.ErrInternalServerError)
			}
			c.Abort()
			return
		}

		c.Set(ctxUsernameKey, claims.Username)
		c.Set(ctxRoleKey, claims.Role)
		c.Next(ctx)
	}
}

// AdminOnly rejects callers without the admin role. It must run after
// Auth.
func AdminOnly() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if c.GetString(ctxRoleKey) != string(aggregate.RoleAdmin) {
			v1.HandlerError(c, consts.StatusForbidden, v1.ErrForbidden)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}

// Username returns the authenticated caller's username.
func Username(c *app.RequestContext) string {
	return c.GetString(ctxUsernameKey)
}

// IsAdmin reports whether the authenticated caller is an admin.
func IsAdmin(c *app.RequestContext) bool {
	return c.GetString(ctxRoleKey) == string(aggregate.RoleAdmin)
}
