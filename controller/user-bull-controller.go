package controller

import (
	"time"

	"sharyat/app_error"
	"sharyat/repository"
	"sharyat/service"
	"sharyat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserBullController struct {
	userBullService *service.UserBullService
}

func NewUserBullController(db *gorm.DB) *UserBullController {
	return &UserBullController{
		userBullService: service.NewUserBullService(db),
	}
}

func setupUserBullController(db *gorm.DB) []RouteInfo {
	c := NewUserBullController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/user-bulls", HandlerFunc: c.getOwnListingsHandler(), Authenticated: true},
		{Method: "POST", Path: "/user-bulls", HandlerFunc: c.createListingHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/user-bulls/:listing_id", HandlerFunc: c.updateListingHandler(), Authenticated: true},
		{Method: "POST", Path: "/user-bulls/:listing_id/sold", HandlerFunc: c.markSoldHandler(), Authenticated: true},
		{Method: "DELETE", Path: "/user-bulls/:listing_id", HandlerFunc: c.deleteListingHandler(), Authenticated: true},
	}
	return routes
}

// @id GetOwnUserBullListings
// @Description List the authenticated user's bull-sale listings
// @Tags user-bull
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserBullListing
// @Router /user-bulls [get]
func (c *UserBullController) getOwnListingsHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, ok := currentUserId(ctx)
		if !ok {
			return
		}
		listings, err := c.userBullService.ListForUser(userId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, utils.Map(listings, toUserBullListingResponse))
	}
}

// @id CreateUserBullListing
// @Description Create a bull-sale listing, capped per user
// @Tags user-bull
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UserBullListingCreate true "Listing to create"
// @Success 201 {object} UserBullListing
// @Router /user-bulls [post]
func (c *UserBullController) createListingHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, ok := currentUserId(ctx)
		if !ok {
			return
		}
		var listingCreate UserBullListingCreate
		if err := ctx.BindJSON(&listingCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		listing, err := c.userBullService.CreateListing(userId, listingCreate.toModel())
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(201, toUserBullListingResponse(listing))
	}
}

// @id UpdateUserBullListing
// @Description Update one of the user's own listings
// @Tags user-bull
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param listing_id path string true "Listing ID"
// @Param body body UserBullListingCreate true "Fields to update"
// @Success 200 {object} UserBullListing
// @Router /user-bulls/{listing_id} [patch]
func (c *UserBullController) updateListingHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, ok := currentUserId(ctx)
		if !ok {
			return
		}
		listingId, ok := uuidParam(ctx, "listing_id")
		if !ok {
			return
		}
		var listingCreate UserBullListingCreate
		if err := ctx.BindJSON(&listingCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		listing, err := c.userBullService.UpdateListing(userId, listingId, listingCreate.toModel())
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toUserBullListingResponse(listing))
	}
}

// @id MarkUserBullListingSold
// @Description Mark one of the user's own listings as sold
// @Tags user-bull
// @Produce json
// @Security BearerAuth
// @Param listing_id path string true "Listing ID"
// @Success 200 {object} UserBullListing
// @Router /user-bulls/{listing_id}/sold [post]
func (c *UserBullController) markSoldHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, ok := currentUserId(ctx)
		if !ok {
			return
		}
		listingId, ok := uuidParam(ctx, "listing_id")
		if !ok {
			return
		}
		listing, err := c.userBullService.MarkSold(userId, listingId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toUserBullListingResponse(listing))
	}
}

// @id DeleteUserBullListing
// @Description Delete one of the user's own listings
// @Tags user-bull
// @Security BearerAuth
// @Param listing_id path string true "Listing ID"
// @Success 204
// @Router /user-bulls/{listing_id} [delete]
func (c *UserBullController) deleteListingHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, ok := currentUserId(ctx)
		if !ok {
			return
		}
		listingId, ok := uuidParam(ctx, "listing_id")
		if !ok {
			return
		}
		if err := c.userBullService.DeleteListing(userId, listingId); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(204, nil)
	}
}

type UserBullListingCreate struct {
	Name         string  `json:"name"`
	Breed        *string `json:"breed"`
	BirthYear    *int    `json:"birth_year"`
	Color        *string `json:"color"`
	Description  *string `json:"description"`
	Price        float64 `json:"price"`
	ImageUrl     string  `json:"image_url"`
	ThumbnailUrl *string `json:"thumbnail_url"`
	Location     *string `json:"location"`
	OwnerName    string  `json:"owner_name"`
	OwnerMobile  string  `json:"owner_mobile"`
}

func (u *UserBullListingCreate) toModel() *repository.UserBullSell {
	return &repository.UserBullSell{
		Name:         u.Name,
		Breed:        u.Breed,
		BirthYear:    u.BirthYear,
		Color:        u.Color,
		Description:  u.Description,
		Price:        u.Price,
		ImageUrl:     u.ImageUrl,
		ThumbnailUrl: u.ThumbnailUrl,
		Location:     u.Location,
		OwnerName:    u.OwnerName,
		OwnerMobile:  u.OwnerMobile,
	}
}

type UserBullListing struct {
	Id           string  `json:"id"`
	Name         string  `json:"name"`
	Breed        *string `json:"breed"`
	BirthYear    *int    `json:"birth_year"`
	Color        *string `json:"color"`
	Description  *string `json:"description"`
	Price        float64 `json:"price"`
	ImageUrl     string  `json:"image_url"`
	ThumbnailUrl *string `json:"thumbnail_url"`
	Location     *string `json:"location"`
	OwnerName    string  `json:"owner_name"`
	OwnerMobile  string  `json:"owner_mobile"`
	Status       string  `json:"status"`
	ExpiresAt    string  `json:"expires_at"`
}

func toUserBullListingResponse(listing *repository.UserBullSell) *UserBullListing {
	if listing == nil {
		return nil
	}
	return &UserBullListing{
		Id:           listing.Id.String(),
		Name:         listing.Name,
		Breed:        listing.Breed,
		BirthYear:    listing.BirthYear,
		Color:        listing.Color,
		Description:  listing.Description,
		Price:        listing.Price,
		ImageUrl:     listing.ImageUrl,
		ThumbnailUrl: listing.ThumbnailUrl,
		Location:     listing.Location,
		OwnerName:    listing.OwnerName,
		OwnerMobile:  listing.OwnerMobile,
		Status:       string(listing.Status),
		ExpiresAt:    listing.ExpiresAt.Format(time.RFC3339),
	}
}
