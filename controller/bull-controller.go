package controller

import (
	"sharyat/app_error"
	"sharyat/repository"
	"sharyat/service"
	"sharyat/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BullController struct {
	bullService       *service.BullService
	statisticsService *service.StatisticsService
}

func NewBullController(db *gorm.DB) *BullController {
	return &BullController{
		bullService:       service.NewBullService(db),
		statisticsService: service.NewStatisticsService(db),
	}
}

func setupBullController(db *gorm.DB) []RouteInfo {
	c := NewBullController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/bulls", HandlerFunc: c.getBullsHandler()},
		{Method: "GET", Path: "/bulls/:bull_id", HandlerFunc: c.getBullHandler()},
		{Method: "GET", Path: "/bulls/:bull_id/statistics", HandlerFunc: c.getBullStatisticsHandler()},
		{Method: "POST", Path: "/bulls", HandlerFunc: c.createBullHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "PATCH", Path: "/bulls/:bull_id", HandlerFunc: c.updateBullHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "DELETE", Path: "/bulls/:bull_id", HandlerFunc: c.deleteBullHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

// @id GetBulls
// @Description List bulls with optional search, owner and active filters
// @Tags bull
// @Produce json
// @Success 200 {object} PaginatedResponse[Bull]
// @Router /bulls [get]
func (c *BullController) getBullsHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		offset, limit := paginationParams(ctx)
		params := repository.BullListParams{
			Offset: offset,
			Limit:  limit,
			Search: ctx.Query("search"),
		}
		if ownerParam := ctx.Query("owner_id"); ownerParam != "" {
			ownerId, err := uuid.Parse(ownerParam)
			if err != nil {
				ctx.JSON(400, gin.H{"error": "invalid owner_id"})
				return
			}
			params.OwnerId = &ownerId
		}
		if activeParam := ctx.Query("is_active"); activeParam != "" {
			isActive := activeParam == "true"
			params.IsActive = &isActive
		}
		bulls, total, err := c.bullService.ListBulls(params)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, PaginatedResponse[*Bull]{
			Items:  utils.Map(bulls, toBullResponse),
			Total:  total,
			Offset: offset,
			Limit:  limit,
		})
	}
}

// @id GetBull
// @Description Get a bull with its owner
// @Tags bull
// @Produce json
// @Param bull_id path string true "Bull ID"
// @Success 200 {object} Bull
// @Router /bulls/{bull_id} [get]
func (c *BullController) getBullHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bullId, ok := uuidParam(ctx, "bull_id")
		if !ok {
			return
		}
		bull, err := c.bullService.GetBullById(bullId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toBullResponse(bull))
	}
}

// @id GetBullStatistics
// @Description Get a bull's career statistics
// @Tags bull
// @Produce json
// @Param bull_id path string true "Bull ID"
// @Success 200 {object} repository.BullStatistics
// @Router /bulls/{bull_id}/statistics [get]
func (c *BullController) getBullStatisticsHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bullId, ok := uuidParam(ctx, "bull_id")
		if !ok {
			return
		}
		stats, err := c.statisticsService.GetBullStatistics(bullId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, stats)
	}
}

// @id CreateBull
// @Description Register a bull under an owner
// @Tags bull
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BullCreate true "Bull to create"
// @Success 201 {object} Bull
// @Router /bulls [post]
func (c *BullController) createBullHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var bullCreate BullCreate
		if err := ctx.BindJSON(&bullCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		bull, err := c.bullService.CreateBull(bullCreate.toModel())
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(201, toBullResponse(bull))
	}
}

// @id UpdateBull
// @Description Update bull fields
// @Tags bull
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bull_id path string true "Bull ID"
// @Param body body BullCreate true "Fields to update"
// @Success 200 {object} Bull
// @Router /bulls/{bull_id} [patch]
func (c *BullController) updateBullHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bullId, ok := uuidParam(ctx, "bull_id")
		if !ok {
			return
		}
		var bullCreate BullCreate
		if err := ctx.BindJSON(&bullCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		bull, err := c.bullService.UpdateBull(bullId, bullCreate.toModel(), bullCreate.IsActive)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toBullResponse(bull))
	}
}

// @id DeleteBull
// @Description Delete a bull
// @Tags bull
// @Security BearerAuth
// @Param bull_id path string true "Bull ID"
// @Success 204
// @Router /bulls/{bull_id} [delete]
func (c *BullController) deleteBullHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bullId, ok := uuidParam(ctx, "bull_id")
		if !ok {
			return
		}
		if err := c.bullService.DeleteBull(bullId); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(204, nil)
	}
}

type BullCreate struct {
	Name               string  `json:"name"`
	OwnerId            string  `json:"owner_id"`
	BirthYear          *int    `json:"birth_year"`
	Breed              *string `json:"breed"`
	Color              *string `json:"color"`
	PhotoUrl           *string `json:"photo_url"`
	ThumbnailUrl       *string `json:"thumbnail_url"`
	Description        *string `json:"description"`
	IsActive           *bool   `json:"is_active"`
	RegistrationNumber *string `json:"registration_number"`
	VillageId          *string `json:"village_id"`
}

func (b *BullCreate) toModel() *repository.Bull {
	bull := &repository.Bull{
		Name:               b.Name,
		BirthYear:          b.BirthYear,
		Breed:              b.Breed,
		Color:              b.Color,
		PhotoUrl:           b.PhotoUrl,
		ThumbnailUrl:       b.ThumbnailUrl,
		Description:        b.Description,
		IsActive:           b.IsActive == nil || *b.IsActive,
		RegistrationNumber: b.RegistrationNumber,
	}
	if ownerId, err := uuid.Parse(b.OwnerId); err == nil {
		bull.OwnerId = ownerId
	}
	if b.VillageId != nil {
		if villageId, err := uuid.Parse(*b.VillageId); err == nil {
			bull.VillageId = &villageId
		}
	}
	return bull
}

type Bull struct {
	Id                 string  `json:"id"`
	Name               string  `json:"name"`
	OwnerId            string  `json:"owner_id"`
	Owner              *Owner  `json:"owner,omitempty"`
	BirthYear          *int    `json:"birth_year"`
	Breed              *string `json:"breed"`
	Color              *string `json:"color"`
	PhotoUrl           *string `json:"photo_url"`
	ThumbnailUrl       *string `json:"thumbnail_url"`
	Description        *string `json:"description"`
	IsActive           bool    `json:"is_active"`
	RegistrationNumber *string `json:"registration_number"`
	VillageId          *string `json:"village_id"`
}

func toBullResponse(bull *repository.Bull) *Bull {
	if bull == nil {
		return nil
	}
	response := &Bull{
		Id:                 bull.Id.String(),
		Name:               bull.Name,
		OwnerId:            bull.OwnerId.String(),
		Owner:              toOwnerResponse(bull.Owner),
		BirthYear:          bull.BirthYear,
		Breed:              bull.Breed,
		Color:              bull.Color,
		PhotoUrl:           bull.PhotoUrl,
		ThumbnailUrl:       bull.ThumbnailUrl,
		Description:        bull.Description,
		IsActive:           bull.IsActive,
		RegistrationNumber: bull.RegistrationNumber,
	}
	if bull.VillageId != nil {
		villageId := bull.VillageId.String()
		response.VillageId = &villageId
	}
	return response
}
