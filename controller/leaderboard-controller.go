package controller

import (
	"strconv"
	"time"

	"sharyat/app_error"
	"sharyat/repository"
	"sharyat/service"
	"sharyat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LeaderboardController struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{
		leaderboardService: service.NewLeaderboardService(db),
	}
}

func setupLeaderboardController(db *gorm.DB) []RouteInfo {
	c := NewLeaderboardController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/leaderboards/:region_type/:region_id", HandlerFunc: c.getLeaderboardHandler()},
		{Method: "POST", Path: "/leaderboards/:region_type/:region_id/refresh", HandlerFunc: c.refreshLeaderboardHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "/leaderboards/refresh-all", HandlerFunc: c.refreshAllHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

func yearMonthParams(ctx *gin.Context) (int, int) {
	now := time.Now()
	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil || year <= 0 {
		year = now.Year()
	}
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}
	return year, month
}

func regionTypeParam(ctx *gin.Context) (repository.RegionType, bool) {
	regionType := repository.RegionType(ctx.Param("region_type"))
	validTypes := []repository.RegionType{repository.RegionVillage, repository.RegionTahsil, repository.RegionTaluka, repository.RegionDistrict}
	if !utils.Contains(validTypes, regionType) {
		ctx.JSON(400, gin.H{"error": "invalid region_type"})
		return "", false
	}
	return regionType, true
}

// @id GetLeaderboard
// @Description Get the monthly top-10 bulls for a region, computing on cache miss
// @Tags leaderboard
// @Produce json
// @Param region_type path string true "village, tahsil, taluka or district"
// @Param region_id path string true "Region ID"
// @Param year query int false "Year, defaults to current"
// @Param month query int false "Month, defaults to current"
// @Success 200 {array} LeaderboardEntry
// @Router /leaderboards/{region_type}/{region_id} [get]
func (c *LeaderboardController) getLeaderboardHandler() gin.HandlerFunc {
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

// @id RefreshLeaderboard
// @Description Recompute the leaderboard for one region
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Param region_type path string true "village, tahsil, taluka or district"
// @Param region_id path string true "Region ID"
// @Success 200 {array} LeaderboardEntry
// @Router /leaderboards/{region_type}/{region_id}/refresh [post]
func (c *LeaderboardController) refreshLeaderboardHandler() gin.HandlerFunc {
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
		entries, err := c.leaderboardService.ComputeAndSave(year, month, regionType, regionId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, utils.Map(entries, toLeaderboardEntryResponse))
	}
}

// @id RefreshAllLeaderboards
// @Description Recompute every region's leaderboard for a month
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year, defaults to current"
// @Param month query int false "Month, defaults to current"
// @Success 200 {object} map[string]int
// @Router /leaderboards/refresh-all [post]
func (c *LeaderboardController) refreshAllHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		year, month := yearMonthParams(ctx)
		count, err := c.leaderboardService.RefreshAllForMonth(year, month)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, gin.H{"refreshed": count})
	}
}

type LeaderboardEntry struct {
	Rank                 int    `json:"rank"`
	Bull                 *Bull  `json:"bull"`
	FirstPlaceWins       int    `json:"first_place_wins"`
	TotalRaces           int    `json:"total_races"`
	BestTimeMilliseconds *int   `json:"best_time_milliseconds"`
	Year                 int    `json:"year"`
	Month                int    `json:"month"`
	RegionType           string `json:"region_type"`
	RegionId             string `json:"region_id"`
}

func toLeaderboardEntryResponse(entry *repository.Leaderboard) *LeaderboardEntry {
	if entry == nil {
		return nil
	}
	return &LeaderboardEntry{
		Rank:                 entry.Rank,
		Bull:                 toBullResponse(entry.Bull),
		FirstPlaceWins:       entry.FirstPlaceWins,
		TotalRaces:           entry.TotalRaces,
		BestTimeMilliseconds: entry.BestTimeMilliseconds,
		Year:                 entry.Year,
		Month:                entry.Month,
		RegionType:           string(entry.RegionType),
		RegionId:             entry.RegionId.String(),
	}
}
