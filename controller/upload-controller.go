package controller

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"sharyat/client"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UploadController struct {
	storageClient *client.StorageClient
}

func NewUploadController() *UploadController {
	storageClient, err := client.NewStorageClient(context.Background())
	if err != nil {
		logrus.WithError(err).Warn("photo storage unavailable")
		storageClient = nil
	}
	return &UploadController{
		storageClient: storageClient,
	}
}

func setupUploadController() []RouteInfo {
	c := NewUploadController()
	routes := []RouteInfo{
		{Method: "POST", Path: "/uploads", HandlerFunc: c.uploadPhotoHandler(), Authenticated: true},
		{Method: "GET", Path: "/uploads/:key", HandlerFunc: c.getPhotoUrlHandler()},
		{Method: "DELETE", Path: "/uploads/:key", HandlerFunc: c.deletePhotoHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

func (c *UploadController) available(ctx *gin.Context) bool {
	if c.storageClient == nil {
		ctx.JSON(503, gin.H{"error": "photo storage unavailable"})
		return false
	}
	return true
}

// @id UploadPhoto
// @Description Upload a photo, returning its storage key
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Photo"
// @Success 201 {object} map[string]string
// @Router /uploads [post]
func (c *UploadController) uploadPhotoHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.available(ctx) {
			return
		}
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(400, gin.H{"error": "file is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		defer file.Close()

		key := fmt.Sprintf("photos/%s%s", uuid.New(), filepath.Ext(fileHeader.Filename))
		contentType := fileHeader.Header.Get("Content-Type")
		if err := c.storageClient.Upload(ctx.Request.Context(), key, contentType, file); err != nil {
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(201, gin.H{"key": key})
	}
}

// @id GetPhotoUrl
// @Description Get a time-limited download URL for a stored photo
// @Tags upload
// @Produce json
// @Param key path string true "Storage key"
// @Success 200 {object} map[string]string
// @Router /uploads/{key} [get]
func (c *UploadController) getPhotoUrlHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.available(ctx) {
			return
		}
		url, err := c.storageClient.PresignGet(ctx.Request.Context(), "photos/"+ctx.Param("key"), 15*time.Minute)
		if err != nil {
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(200, gin.H{"url": url})
	}
}

// @id DeletePhoto
// @Description Delete a stored photo
// @Tags upload
// @Security BearerAuth
// @Param key path string true "Storage key"
// @Success 204
// @Router /uploads/{key} [delete]
func (c *UploadController) deletePhotoHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.available(ctx) {
			return
		}
		if err := c.storageClient.Delete(ctx.Request.Context(), "photos/"+ctx.Param("key")); err != nil {
			ctx.JSON(500, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(204, nil)
	}
}
