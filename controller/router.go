package controller

import (
	"strings"

	"sharyat/auth"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RoleRequired  []string
}

func SetRoutes(r *gin.Engine, db *gorm.DB, cacheStore persistence.CacheStore) {
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupAuthController(db)...)
	routes = append(routes, setupOwnerController(db)...)
	routes = append(routes, setupBullController(db)...)
	routes = append(routes, setupRaceController(db)...)
	routes = append(routes, setupRaceResultController(db)...)
	routes = append(routes, setupLeaderboardController(db)...)
	routes = append(routes, setupMarketplaceController(db)...)
	routes = append(routes, setupUserBullController(db)...)
	routes = append(routes, setupNotificationController(db)...)
	routes = append(routes, setupDashboardController(db)...)
	routes = append(routes, setupPublicController(db, cacheStore)...)
	routes = append(routes, setupLiveController(db)...)
	routes = append(routes, setupUploadController()...)
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(route.RoleRequired))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		r.Handle(route.Method, route.Path, handlerfuncs...)
	}
}

// AuthMiddleware accepts the token either as the "auth" cookie (admin panel)
// or an Authorization bearer header (mobile app).
func AuthMiddleware(roles []string) gin.HandlerFunc {
	return func(r *gin.Context) {
		tokenString, err := r.Cookie("auth")
		if err != nil {
			header := r.GetHeader("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				r.JSON(401, gin.H{"error": "Unauthenticated"})
				r.Abort()
				return
			}
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
		token, err := auth.ParseToken(tokenString)
		if err != nil || !token.Valid {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		claims := &auth.Claims{}
		claims.FromJWTClaims(token.Claims)
		if err := claims.Valid(); err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		r.Set("claims", claims)
		if len(roles) == 0 {
			r.Next()
			return
		}

		for _, requiredRole := range roles {
			for _, userRole := range claims.Permissions {
				if requiredRole == userRole {
					r.Next()
					return
				}
			}
		}
		r.JSON(403, gin.H{"error": "Unauthorized"})
		r.Abort()
	}
}
