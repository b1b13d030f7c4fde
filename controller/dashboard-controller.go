package controller

import (
	"sharyat/app_error"
	"sharyat/service"
	"sharyat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	dashboardService *service.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{
		dashboardService: service.NewDashboardService(db),
	}
}

func setupDashboardController(db *gorm.DB) []RouteInfo {
	c := NewDashboardController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/dashboard/counts", HandlerFunc: c.getCountsHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "GET", Path: "/dashboard/upcoming-races", HandlerFunc: c.getUpcomingRacesHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

// @id GetDashboardCounts
// @Description Entity counts for the admin panel landing page
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardCounts
// @Router /dashboard/counts [get]
func (c *DashboardController) getCountsHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		counts, err := c.dashboardService.GetCounts()
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, counts)
	}
}

// @id GetUpcomingRaces
// @Description Scheduled races starting today or later
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Race
// @Router /dashboard/upcoming-races [get]
func (c *DashboardController) getUpcomingRacesHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		races, err := c.dashboardService.GetUpcomingRaces(10)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, utils.Map(races, toRaceResponse))
	}
}
