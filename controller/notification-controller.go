package controller

import (
	"sharyat/app_error"
	"sharyat/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationController struct {
	notificationService *service.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	notificationService, err := service.NewNotificationService(db)
	if err != nil {
		// no broker configured; handlers answer 503 instead of the process dying
		notificationService = nil
	}
	return &NotificationController{
		notificationService: notificationService,
	}
}

func setupNotificationController(db *gorm.DB) []RouteInfo {
	c := NewNotificationController(db)
	routes := []RouteInfo{
		{Method: "POST", Path: "/device-tokens", HandlerFunc: c.registerTokenHandler()},
		{Method: "DELETE", Path: "/device-tokens", HandlerFunc: c.unregisterTokenHandler()},
		{Method: "POST", Path: "/notifications/races/:race_id", HandlerFunc: c.announceRaceHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "/notifications/announce", HandlerFunc: c.announceHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

func (c *NotificationController) available(ctx *gin.Context) bool {
	if c.notificationService == nil {
		ctx.JSON(503, gin.H{"error": "notifications unavailable"})
		return false
	}
	return true
}

// @id RegisterDeviceToken
// @Description Register a device token for push notifications, idempotent by token
// @Tags notification
// @Accept json
// @Produce json
// @Param body body DeviceTokenCreate true "Token to register"
// @Success 200 {object} map[string]string
// @Router /device-tokens [post]
func (c *NotificationController) registerTokenHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.available(ctx) {
			return
		}
		var tokenCreate DeviceTokenCreate
		if err := ctx.BindJSON(&tokenCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var userId *uuid.UUID
		if tokenCreate.UserId != nil {
			parsed, err := uuid.Parse(*tokenCreate.UserId)
			if err != nil {
				ctx.JSON(400, gin.H{"error": "invalid user_id"})
				return
			}
			userId = &parsed
		}
		if _, err := c.notificationService.RegisterDeviceToken(tokenCreate.DeviceToken, tokenCreate.Platform, userId); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, gin.H{"status": "registered"})
	}
}

// @id UnregisterDeviceToken
// @Description Remove a device token
// @Tags notification
// @Accept json
// @Produce json
// @Param body body DeviceTokenDelete true "Token to remove"
// @Success 204
// @Router /device-tokens [delete]
func (c *NotificationController) unregisterTokenHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.available(ctx) {
			return
		}
		var tokenDelete DeviceTokenDelete
		if err := ctx.BindJSON(&tokenDelete); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := c.notificationService.UnregisterDeviceToken(tokenDelete.DeviceToken); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(204, nil)
	}
}

// @id AnnounceRace
// @Description Queue a push notification announcing a race
// @Tags notification
// @Produce json
// @Security BearerAuth
// @Param race_id path string true "Race ID"
// @Success 202 {object} map[string]string
// @Router /notifications/races/{race_id} [post]
func (c *NotificationController) announceRaceHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.available(ctx) {
			return
		}
		raceId, ok := uuidParam(ctx, "race_id")
		if !ok {
			return
		}
		if err := c.notificationService.AnnounceRace(ctx.Request.Context(), raceId); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(202, gin.H{"status": "queued"})
	}
}

// @id Announce
// @Description Queue a free-form broadcast push notification
// @Tags notification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AnnouncementCreate true "Announcement"
// @Success 202 {object} map[string]string
// @Router /notifications/announce [post]
func (c *NotificationController) announceHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.available(ctx) {
			return
		}
		var announcement AnnouncementCreate
		if err := ctx.BindJSON(&announcement); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := c.notificationService.Announce(ctx.Request.Context(), announcement.Title, announcement.Body); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(202, gin.H{"status": "queued"})
	}
}

type DeviceTokenCreate struct {
	DeviceToken string  `json:"device_token" binding:"required"`
	Platform    string  `json:"platform" binding:"required"`
	UserId      *string `json:"user_id"`
}

type DeviceTokenDelete struct {
	DeviceToken string `json:"device_token" binding:"required"`
}

type AnnouncementCreate struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}
