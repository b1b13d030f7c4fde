package controller

import (
	"time"

	"sharyat/app_error"
	"sharyat/repository"
	"sharyat/service"
	"sharyat/utils"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicController serves the unauthenticated app endpoints. Responses are
// page-cached; the data changes on race days, not per request.
type PublicController struct {
	bullService        *service.BullService
	statisticsService  *service.StatisticsService
	raceService        *service.RaceService
	userBullService    *service.UserBullService
	marketplaceService *service.MarketplaceService
	leaderboardService *service.LeaderboardService
}

func NewPublicController(db *gorm.DB) *PublicController {
	return &PublicController{
		bullService:        service.NewBullService(db),
		statisticsService:  service.NewStatisticsService(db),
		raceService:        service.NewRaceService(db),
		userBullService:    service.NewUserBullService(db),
		marketplaceService: service.NewMarketplaceService(db),
		leaderboardService: service.NewLeaderboardService(db),
	}
}

func setupPublicController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	c := NewPublicController(db)
	cached := func(handler gin.HandlerFunc) gin.HandlerFunc {
		return cache.CachePage(cacheStore, time.Minute, handler)
	}
	routes := []RouteInfo{
		{Method: "GET", Path: "/public/bulls", HandlerFunc: cached(c.getBullsWithStatsHandler())},
		{Method: "GET", Path: "/public/races", HandlerFunc: cached(c.getRacesHandler())},
		{Method: "GET", Path: "/public/marketplace", HandlerFunc: cached(c.getMarketplaceHandler())},
		{Method: "GET", Path: "/public/user-bulls", HandlerFunc: cached(c.getUserBullsHandler())},
		{Method: "GET", Path: "/public/leaderboards/:region_type/:region_id", HandlerFunc: cached(c.getLeaderboardHandler())},
	}
	return routes
}

// @id GetPublicBulls
// @Description List active bulls with career statistics
// @Tags public
// @Produce json
// @Success 200 {object} PaginatedResponse[BullWithStats]
// @Router /public/bulls [get]
func (c *PublicController) getBullsWithStatsHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		offset, limit := paginationParams(ctx)
		isActive := true
		bulls, total, err := c.bullService.ListBulls(repository.BullListParams{
			Offset:   offset,
			Limit:    limit,
			Search:   ctx.Query("search"),
			IsActive: &isActive,
		})
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		bullIds := utils.Map(bulls, func(bull *repository.Bull) uuid.UUID { return bull.Id })
		statsMap, err := c.statisticsService.GetBullStatisticsBatch(bullIds)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		items := utils.Map(bulls, func(bull *repository.Bull) *BullWithStats {
			return &BullWithStats{
				Bull:       toBullResponse(bull),
				Statistics: statsMap[bull.Id],
			}
		})
		ctx.JSON(200, PaginatedResponse[*BullWithStats]{
			Items:  items,
			Total:  total,
			Offset: offset,
			Limit:  limit,
		})
	}
}

// @id GetPublicRaces
// @Description List races for the public app
// @Tags public
// @Produce json
// @Success 200 {object} PaginatedResponse[Race]
// @Router /public/races [get]
func (c *PublicController) getRacesHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		offset, limit := paginationParams(ctx)
		races, total, err := c.raceService.ListRaces(repository.RaceListParams{
			Offset: offset,
			Limit:  limit,
			Search: ctx.Query("search"),
		})
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, PaginatedResponse[*Race]{
			Items:  utils.Map(races, toRaceResponse),
			Total:  total,
			Offset: offset,
			Limit:  limit,
		})
	}
}

// @id GetPublicMarketplace
// @Description List available curated marketplace listings
// @Tags public
// @Produce json
// @Success 200 {object} PaginatedResponse[MarketplaceListing]
// @Router /public/marketplace [get]
func (c *PublicController) getMarketplaceHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		offset, limit := paginationParams(ctx)
		status := repository.ListingAvailable
		listings, total, err := c.marketplaceService.ListListings(offset, limit, &status, ctx.Query("search"))
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

// @id GetPublicUserBulls
// @Description List available user bull-sale listings
// @Tags public
// @Produce json
// @Success 200 {object} PaginatedResponse[UserBullListing]
// @Router /public/user-bulls [get]
func (c *PublicController) getUserBullsHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		offset, limit := paginationParams(ctx)
		listings, total, err := c.userBullService.ListPublic(offset, limit, ctx.Query("search"))
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, PaginatedResponse[*UserBullListing]{
			Items:  utils.Map(listings, toUserBullListingResponse),
			Total:  total,
			Offset: offset,
			Limit:  limit,
		})
	}
}

// @id GetPublicLeaderboard
// @Description Monthly top-10 bulls for a region, served from the page cache
// @Tags public
// @Produce json
// @Param region_type path string true "village, tahsil, taluka or district"
// @Param region_id path string true "Region ID"
// @Param year query int false "Year, defaults to current"
// @Param month query int false "Month, defaults to current"
// @Success 200 {array} LeaderboardEntry
// @Router /public/leaderboards/{region_type}/{region_id} [get]
func (c *PublicController) getLeaderboardHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		regionType, ok := regionTypeParam(ctx)
		if !ok {
			return
		}
		regionId, ok := uuidParam(ctx, "region_id")
		if !ok {
			return
		}
		year, month := yearMonthParams(ctx)
		entries, err := c.leaderboardService.GetLeaderboard(year, month, regionType, regionId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, utils.Map(entries, toLeaderboardEntryResponse))
	}
}

type BullWithStats struct {
	Bull       *Bull                      `json:"bull"`
	Statistics *repository.BullStatistics `json:"statistics"`
}
