package controller

import (
	"sharyat/app_error"
	"sharyat/repository"
	"sharyat/service"
	"sharyat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MarketplaceController struct {
	marketplaceService *service.MarketplaceService
}

func NewMarketplaceController(db *gorm.DB) *MarketplaceController {
	return &MarketplaceController{
		marketplaceService: service.NewMarketplaceService(db),
	}
}

func setupMarketplaceController(db *gorm.DB) []RouteInfo {
	c := NewMarketplaceController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/marketplace", HandlerFunc: c.getListingsHandler()},
		{Method: "GET", Path: "/marketplace/:listing_id", HandlerFunc: c.getListingHandler()},
		{Method: "POST", Path: "/marketplace", HandlerFunc: c.createListingHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "PATCH", Path: "/marketplace/:listing_id", HandlerFunc: c.updateListingHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "DELETE", Path: "/marketplace/:listing_id", HandlerFunc: c.deleteListingHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

// @id GetMarketplaceListings
// @Description List curated marketplace listings
// @Tags marketplace
// @Produce json
// @Success 200 {object} PaginatedResponse[MarketplaceListing]
// @Router /marketplace [get]
func (c *MarketplaceController) getListingsHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		offset, limit := paginationParams(ctx)
		var status *repository.ListingStatus
		if statusParam := ctx.Query("status"); statusParam != "" {
			listingStatus := repository.ListingStatus(statusParam)
			status = &listingStatus
		}
		listings, total, err := c.marketplaceService.ListListings(offset, limit, status, ctx.Query("search"))
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, PaginatedResponse[*MarketplaceListing]{
			Items:  utils.Map(listings, toMarketplaceListingResponse),
			Total:  total,
			Offset: offset,
			Limit:  limit,
		})
	}
}

// @id GetMarketplaceListing
// @Description Get a marketplace listing
// @Tags marketplace
// @Produce json
// @Param listing_id path string true "Listing ID"
// @Success 200 {object} MarketplaceListing
// @Router /marketplace/{listing_id} [get]
func (c *MarketplaceController) getListingHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		listingId, ok := uuidParam(ctx, "listing_id")
		if !ok {
			return
		}
		listing, err := c.marketplaceService.GetListingById(listingId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toMarketplaceListingResponse(listing))
	}
}

// @id CreateMarketplaceListing
// @Description Create a curated marketplace listing
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MarketplaceListingCreate true "Listing to create"
// @Success 201 {object} MarketplaceListing
// @Router /marketplace [post]
func (c *MarketplaceController) createListingHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var listingCreate MarketplaceListingCreate
		if err := ctx.BindJSON(&listingCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		listing, err := c.marketplaceService.CreateListing(listingCreate.toModel())
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(201, toMarketplaceListingResponse(listing))
	}
}

// @id UpdateMarketplaceListing
// @Description Update a marketplace listing
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param listing_id path string true "Listing ID"
// @Param body body MarketplaceListingCreate true "Fields to update"
// @Success 200 {object} MarketplaceListing
// @Router /marketplace/{listing_id} [patch]
func (c *MarketplaceController) updateListingHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		listingId, ok := uuidParam(ctx, "listing_id")
		if !ok {
			return
		}
		var listingCreate MarketplaceListingCreate
		if err := ctx.BindJSON(&listingCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		listing, err := c.marketplaceService.UpdateListing(listingId, listingCreate.toModel())
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toMarketplaceListingResponse(listing))
	}
}

// @id DeleteMarketplaceListing
// @Description Delete a marketplace listing
// @Tags marketplace
// @Security BearerAuth
// @Param listing_id path string true "Listing ID"
// @Success 204
// @Router /marketplace/{listing_id} [delete]
func (c *MarketplaceController) deleteListingHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		listingId, ok := uuidParam(ctx, "listing_id")
		if !ok {
			return
		}
		if err := c.marketplaceService.DeleteListing(listingId); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(204, nil)
	}
}

type MarketplaceListingCreate struct {
	Name         string  `json:"name"`
	OwnerName    string  `json:"owner_name"`
	OwnerMobile  string  `json:"owner_mobile"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	ImageUrl     string  `json:"image_url"`
	ThumbnailUrl *string `json:"thumbnail_url"`
	Description  *string `json:"description"`
	Status       string  `json:"status"`
}

func (m *MarketplaceListingCreate) toModel() *repository.MarketplaceListing {
	return &repository.MarketplaceListing{
		Name:         m.Name,
		OwnerName:    m.OwnerName,
		OwnerMobile:  m.OwnerMobile,
		Location:     m.Location,
		Price:        m.Price,
		ImageUrl:     m.ImageUrl,
		ThumbnailUrl: m.ThumbnailUrl,
		Description:  m.Description,
		Status:       repository.ListingStatus(m.Status),
	}
}

type MarketplaceListing struct {
	Id           string  `json:"id"`
	Name         string  `json:"name"`
	OwnerName    string  `json:"owner_name"`
	OwnerMobile  string  `json:"owner_mobile"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	ImageUrl     string  `json:"image_url"`
	ThumbnailUrl *string `json:"thumbnail_url"`
	Description  *string `json:"description"`
	Status       string  `json:"status"`
}

func toMarketplaceListingResponse(listing *repository.MarketplaceListing) *MarketplaceListing {
	if listing == nil {
		return nil
	}
	return &MarketplaceListing{
		Id:           listing.Id.String(),
		Name:         listing.Name,
		OwnerName:    listing.OwnerName,
		OwnerMobile:  listing.OwnerMobile,
		Location:     listing.Location,
		Price:        listing.Price,
		ImageUrl:     listing.ImageUrl,
		ThumbnailUrl: listing.ThumbnailUrl,
		Description:  listing.Description,
		Status:       string(listing.Status),
	}
}
