package controller

import (
	"sharyat/app_error"
	"sharyat/config"
	"sharyat/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	userService *service.UserService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		userService: service.NewUserService(db),
	}
}

func setupAuthController(db *gorm.DB) []RouteInfo {
	c := NewAuthController(db)
	routes := []RouteInfo{
		{Method: "POST", Path: "/auth/login", HandlerFunc: c.userLoginHandler()},
		{Method: "POST", Path: "/auth/admin/login", HandlerFunc: c.adminLoginHandler()},
		{Method: "POST", Path: "/auth/logout", HandlerFunc: c.logoutHandler()},
		{Method: "GET", Path: "/auth/me", HandlerFunc: c.meHandler(), Authenticated: true},
	}
	return routes
}

// @id UserLogin
// @Description Sign in a mobile account by phone number, creating it on first login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body UserLogin true "Phone number"
// @Success 200 {object} map[string]string
// @Router /auth/login [post]
func (c *AuthController) userLoginHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var login UserLogin
		if err := ctx.BindJSON(&login); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		token, user, err := c.userService.LoginUser(login.PhoneNumber)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, gin.H{"token": token, "user_id": user.Id.String()})
	}
}

// @id AdminLogin
// @Description Sign in a panel account, setting the auth cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param body body AdminLogin true "Credentials"
// @Success 200 {object} map[string]string
// @Router /auth/admin/login [post]
func (c *AuthController) adminLoginHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var login AdminLogin
		if err := ctx.BindJSON(&login); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		token, admin, err := c.userService.LoginAdmin(login.Username, login.Password)
		if err != nil {
			ctx.JSON(401, gin.H{"error": "invalid credentials"})
			return
		}
		ctx.SetCookie("auth", token, 60*60*24, "/", "", config.IsProduction(), true)
		ctx.JSON(200, gin.H{
			"token":       token,
			"username":    admin.Username,
			"permissions": []string(admin.Permissions),
		})
	}
}

// @id Logout
// @Description Clear the auth cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (c *AuthController) logoutHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.SetCookie("auth", "", -1, "/", "", config.IsProduction(), true)
		ctx.JSON(200, gin.H{"status": "logged out"})
	}
}

// @id Me
// @Description Get the authenticated account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /auth/me [get]
func (c *AuthController) meHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, ok := currentUserId(ctx)
		if !ok {
			return
		}
		// an id can belong to either account table; try both
		if admin, err := c.userService.GetAdminById(userId); err == nil {
			ctx.JSON(200, gin.H{
				"id":          admin.Id.String(),
				"username":    admin.Username,
				"permissions": []string(admin.Permissions),
			})
			return
		}
		user, err := c.userService.GetUserById(userId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, gin.H{
			"id":           user.Id.String(),
			"phone_number": user.PhoneNumber,
		})
	}
}

type UserLogin struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type AdminLogin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
