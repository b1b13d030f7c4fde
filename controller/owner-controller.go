package controller

import (
	"sharyat/app_error"
	"sharyat/repository"
	"sharyat/service"
	"sharyat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OwnerController struct {
	ownerService *service.OwnerService
}

func NewOwnerController(db *gorm.DB) *OwnerController {
	return &OwnerController{
		ownerService: service.NewOwnerService(db),
	}
}

func setupOwnerController(db *gorm.DB) []RouteInfo {
	c := NewOwnerController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/owners", HandlerFunc: c.getOwnersHandler()},
		{Method: "GET", Path: "/owners/:owner_id", HandlerFunc: c.getOwnerHandler()},
		{Method: "POST", Path: "/owners", HandlerFunc: c.createOwnerHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "PATCH", Path: "/owners/:owner_id", HandlerFunc: c.updateOwnerHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "DELETE", Path: "/owners/:owner_id", HandlerFunc: c.deleteOwnerHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

// @id GetOwners
// @Description List owners with optional name search
// @Tags owner
// @Produce json
// @Success 200 {object} PaginatedResponse[Owner]
// @Router /owners [get]
func (c *OwnerController) getOwnersHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		offset, limit := paginationParams(ctx)
		owners, total, err := c.ownerService.ListOwners(offset, limit, ctx.Query("search"))
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, PaginatedResponse[*Owner]{
			Items:  utils.Map(owners, toOwnerResponse),
			Total:  total,
			Offset: offset,
			Limit:  limit,
		})
	}
}

// @id GetOwner
// @Description Get an owner
// @Tags owner
// @Produce json
// @Param owner_id path string true "Owner ID"
// @Success 200 {object} Owner
// @Router /owners/{owner_id} [get]
func (c *OwnerController) getOwnerHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ownerId, ok := uuidParam(ctx, "owner_id")
		if !ok {
			return
		}
		owner, err := c.ownerService.GetOwnerById(ownerId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toOwnerResponse(owner))
	}
}

// @id CreateOwner
// @Description Create an owner
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OwnerCreate true "Owner to create"
// @Success 201 {object} Owner
// @Router /owners [post]
func (c *OwnerController) createOwnerHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var ownerCreate OwnerCreate
		if err := ctx.BindJSON(&ownerCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		owner, err := c.ownerService.SaveOwner(ownerCreate.toModel())
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(201, toOwnerResponse(owner))
	}
}

// @id UpdateOwner
// @Description Update owner fields
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param owner_id path string true "Owner ID"
// @Param body body OwnerCreate true "Fields to update"
// @Success 200 {object} Owner
// @Router /owners/{owner_id} [patch]
func (c *OwnerController) updateOwnerHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ownerId, ok := uuidParam(ctx, "owner_id")
		if !ok {
			return
		}
		var ownerCreate OwnerCreate
		if err := ctx.BindJSON(&ownerCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		owner, err := c.ownerService.UpdateOwner(ownerId, ownerCreate.toModel())
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toOwnerResponse(owner))
	}
}

// @id DeleteOwner
// @Description Delete an owner without bulls
// @Tags owner
// @Security BearerAuth
// @Param owner_id path string true "Owner ID"
// @Success 204
// @Router /owners/{owner_id} [delete]
func (c *OwnerController) deleteOwnerHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ownerId, ok := uuidParam(ctx, "owner_id")
		if !ok {
			return
		}
		if err := c.ownerService.DeleteOwner(ownerId); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(204, nil)
	}
}

type OwnerCreate struct {
	FullName     string  `json:"full_name"`
	PhoneNumber  *string `json:"phone_number"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	PhotoUrl     *string `json:"photo_url"`
	ThumbnailUrl *string `json:"thumbnail_url"`
}

func (o *OwnerCreate) toModel() *repository.Owner {
	return &repository.Owner{
		FullName:     o.FullName,
		PhoneNumber:  o.PhoneNumber,
		Email:        o.Email,
		Address:      o.Address,
		PhotoUrl:     o.PhotoUrl,
		ThumbnailUrl: o.ThumbnailUrl,
	}
}

type Owner struct {
	Id           string  `json:"id"`
	FullName     string  `json:"full_name"`
	PhoneNumber  *string `json:"phone_number"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	PhotoUrl     *string `json:"photo_url"`
	ThumbnailUrl *string `json:"thumbnail_url"`
}

func toOwnerResponse(owner *repository.Owner) *Owner {
	if owner == nil {
		return nil
	}
	return &Owner{
		Id:           owner.Id.String(),
		FullName:     owner.FullName,
		PhoneNumber:  owner.PhoneNumber,
		Email:        owner.Email,
		Address:      owner.Address,
		PhotoUrl:     owner.PhotoUrl,
		ThumbnailUrl: owner.ThumbnailUrl,
	}
}
