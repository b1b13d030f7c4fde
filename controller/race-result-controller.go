package controller

import (
	"sharyat/app_error"
	"sharyat/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RaceResultController covers the single-row operations; the full-list
// replacement lives on the race controller.
type RaceResultController struct {
	raceService *service.RaceService
}

func NewRaceResultController(db *gorm.DB) *RaceResultController {
	return &RaceResultController{
		raceService: service.NewRaceService(db),
	}
}

func setupRaceResultController(db *gorm.DB) []RouteInfo {
	c := NewRaceResultController(db)
	routes := []RouteInfo{
		{Method: "POST", Path: "/race-days/:race_day_id/results/single", HandlerFunc: c.createResultHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "PATCH", Path: "/race-results/:result_id", HandlerFunc: c.updateResultHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "DELETE", Path: "/race-results/:result_id", HandlerFunc: c.deleteResultHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

// @id CreateResult
// @Description Add a single result to a race day
// @Tags race
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param race_day_id path string true "Race Day ID"
// @Param body body RaceResultCreate true "Result to create"
// @Success 201 {object} RaceResult
// @Router /race-days/{race_day_id}/results/single [post]
func (c *RaceResultController) createResultHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceDayId, ok := uuidParam(ctx, "race_day_id")
		if !ok {
			return
		}
		var resultCreate RaceResultCreate
		if err := ctx.BindJSON(&resultCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		result, err := c.raceService.CreateResult(raceDayId, resultCreate.toModel())
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(201, toRaceResultResponse(result))
	}
}

// @id UpdateResult
// @Description Update a single result
// @Tags race
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param result_id path string true "Result ID"
// @Param body body RaceResultCreate true "Fields to update"
// @Success 200 {object} RaceResult
// @Router /race-results/{result_id} [patch]
func (c *RaceResultController) updateResultHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		resultId, ok := uuidParam(ctx, "result_id")
		if !ok {
			return
		}
		var resultCreate RaceResultCreate
		if err := ctx.BindJSON(&resultCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		result, err := c.raceService.UpdateResult(resultId, resultCreate.toModel())
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toRaceResultResponse(result))
	}
}

// @id DeleteResult
// @Description Delete a single result and recount participants
// @Tags race
// @Security BearerAuth
// @Param result_id path string true "Result ID"
// @Success 204
// @Router /race-results/{result_id} [delete]
func (c *RaceResultController) deleteResultHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		resultId, ok := uuidParam(ctx, "result_id")
		if !ok {
			return
		}
		if err := c.raceService.DeleteResult(resultId); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(204, nil)
	}
}
