package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EngOsamaQazan/Archeef/internal/model"
	"github.com/EngOsamaQazan/Archeef/pkg/jwt"
	"github.com/EngOsamaQazan/Archeef/pkg/redis"
	"github.com/EngOsamaQazan/Archeef/pkg/response"
)

// JWTAuth verifies the Authorization: Bearer <token> header and injects
// user_id, role and the parsed claims into the context. rdb may be nil,
// in which case the token blacklist check is skipped.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "مطلوب تسجيل الدخول")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "ترويسة المصادقة غير صالحة")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "انتهت الجلسة، سجّل الدخول من جديد")
			c.Abort()
			return
		}
		if claims.TokenType != jwt.TokenTypeAccess {
			response.Unauthorized(c, 10002, "نوع الرمز غير صالح")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "انتهت الجلسة، سجّل الدخول من جديد")
				c.Abort()
				return
			}
			// a failing blacklist check degrades open, like RateLimit
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequirePermission gates a route on one of the role permissions
// (read, write, delete, admin).
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "غير مصرح")
			c.Abort()
			return
		}

		userRole, _ := role.(string)
		if !model.RoleHasPermission(userRole, permission) {
			response.Forbidden(c, 10003, "ليس لديك صلاحية لهذه العملية")
			c.Abort()
			return
		}
		c.Next()
	}
}
