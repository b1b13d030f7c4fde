package controller

import (
	"time"

	"sharyat/app_error"
	"sharyat/repository"
	"sharyat/service"
	"sharyat/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type RaceController struct {
	raceService *service.RaceService
}

func NewRaceController(db *gorm.DB) *RaceController {
	return &RaceController{
		raceService: service.NewRaceService(db),
	}
}

func setupRaceController(db *gorm.DB) []RouteInfo {
	c := NewRaceController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/races", HandlerFunc: c.getRacesHandler()},
		{Method: "GET", Path: "/races/:race_id", HandlerFunc: c.getRaceHandler()},
		{Method: "POST", Path: "/races", HandlerFunc: c.createRaceHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "PATCH", Path: "/races/:race_id", HandlerFunc: c.updateRaceHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "DELETE", Path: "/races/:race_id", HandlerFunc: c.deleteRaceHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "POST", Path: "/races/:race_id/cancel", HandlerFunc: c.cancelRaceHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "GET", Path: "/races/:race_id/days", HandlerFunc: c.getRaceDaysHandler()},
		{Method: "POST", Path: "/races/:race_id/days", HandlerFunc: c.createRaceDayHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "PATCH", Path: "/race-days/:race_day_id", HandlerFunc: c.updateRaceDayHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "DELETE", Path: "/race-days/:race_day_id", HandlerFunc: c.deleteRaceDayHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
		{Method: "GET", Path: "/race-days/:race_day_id/results", HandlerFunc: c.getResultsHandler()},
		{Method: "PUT", Path: "/race-days/:race_day_id/results", HandlerFunc: c.replaceResultsHandler(), Authenticated: true, RoleRequired: []string{"admin"}},
	}
	return routes
}

// @id GetRaces
// @Description List races with optional search, status and date filters
// @Tags race
// @Produce json
// @Success 200 {object} PaginatedResponse[Race]
// @Router /races [get]
func (c *RaceController) getRacesHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		offset, limit := paginationParams(ctx)
		params := repository.RaceListParams{
			Offset: offset,
			Limit:  limit,
			Search: ctx.Query("search"),
		}
		if status := ctx.Query("status"); status != "" {
			raceStatus := repository.RaceStatus(status)
			params.Status = &raceStatus
		}
		if from := ctx.Query("from_date"); from != "" {
			if fromDate, err := time.Parse(dateLayout, from); err == nil {
				params.FromDate = &fromDate
			}
		}
		if to := ctx.Query("to_date"); to != "" {
			if toDate, err := time.Parse(dateLayout, to); err == nil {
				params.ToDate = &toDate
			}
		}
		races, total, err := c.raceService.ListRaces(params)
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

// @id GetRace
// @Description Get a race including its days
// @Tags race
// @Produce json
// @Param race_id path string true "Race ID"
// @Success 200 {object} Race
// @Router /races/{race_id} [get]
func (c *RaceController) getRaceHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceId, ok := uuidParam(ctx, "race_id")
		if !ok {
			return
		}
		race, err := c.raceService.GetRaceById(raceId, "Days")
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toRaceResponse(race))
	}
}

// @id CreateRace
// @Description Create a race
// @Tags race
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RaceCreate true "Race to create"
// @Success 201 {object} Race
// @Router /races [post]
func (c *RaceController) createRaceHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var raceCreate RaceCreate
		if err := ctx.BindJSON(&raceCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		race, err := raceCreate.toModel()
		if err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		created, err := c.raceService.CreateRace(race)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(201, toRaceResponse(created))
	}
}

// @id UpdateRace
// @Description Update race fields
// @Tags race
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param race_id path string true "Race ID"
// @Param body body RaceCreate true "Fields to update"
// @Success 200 {object} Race
// @Router /races/{race_id} [patch]
func (c *RaceController) updateRaceHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceId, ok := uuidParam(ctx, "race_id")
		if !ok {
			return
		}
		var raceCreate RaceCreate
		if err := ctx.BindJSON(&raceCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		update, err := raceCreate.toModel()
		if err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		race, err := c.raceService.UpdateRace(raceId, update)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toRaceResponse(race))
	}
}

// @id DeleteRace
// @Description Delete a race with all days and results
// @Tags race
// @Security BearerAuth
// @Param race_id path string true "Race ID"
// @Success 204
// @Router /races/{race_id} [delete]
func (c *RaceController) deleteRaceHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceId, ok := uuidParam(ctx, "race_id")
		if !ok {
			return
		}
		if err := c.raceService.DeleteRace(raceId); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(204, nil)
	}
}

// @id CancelRace
// @Description Cancel a race, keeping its days and results
// @Tags race
// @Produce json
// @Security BearerAuth
// @Param race_id path string true "Race ID"
// @Success 200 {object} Race
// @Router /races/{race_id}/cancel [post]
func (c *RaceController) cancelRaceHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceId, ok := uuidParam(ctx, "race_id")
		if !ok {
			return
		}
		race, err := c.raceService.CancelRace(raceId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toRaceResponse(race))
	}
}

// @id GetRaceDays
// @Description List the days of a race ordered by day number
// @Tags race
// @Produce json
// @Param race_id path string true "Race ID"
// @Success 200 {array} RaceDay
// @Router /races/{race_id}/days [get]
func (c *RaceController) getRaceDaysHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceId, ok := uuidParam(ctx, "race_id")
		if !ok {
			return
		}
		days, err := c.raceService.ListRaceDays(raceId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, utils.Map(days, toRaceDayResponse))
	}
}

// @id CreateRaceDay
// @Description Add a day to a race
// @Tags race
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param race_id path string true "Race ID"
// @Param body body RaceDayCreate true "Day to create"
// @Success 201 {object} RaceDay
// @Router /races/{race_id}/days [post]
func (c *RaceController) createRaceDayHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceId, ok := uuidParam(ctx, "race_id")
		if !ok {
			return
		}
		var dayCreate RaceDayCreate
		if err := ctx.BindJSON(&dayCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		day, err := dayCreate.toModel()
		if err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		created, err := c.raceService.CreateRaceDay(raceId, day)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(201, toRaceDayResponse(created))
	}
}

// @id UpdateRaceDay
// @Description Update a race day
// @Tags race
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param race_day_id path string true "Race Day ID"
// @Param body body RaceDayCreate true "Fields to update"
// @Success 200 {object} RaceDay
// @Router /race-days/{race_day_id} [patch]
func (c *RaceController) updateRaceDayHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceDayId, ok := uuidParam(ctx, "race_day_id")
		if !ok {
			return
		}
		var dayCreate RaceDayCreate
		if err := ctx.BindJSON(&dayCreate); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		update, err := dayCreate.toModel()
		if err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		day, err := c.raceService.UpdateRaceDay(raceDayId, update)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, toRaceDayResponse(day))
	}
}

// @id DeleteRaceDay
// @Description Delete a race day with its results
// @Tags race
// @Security BearerAuth
// @Param race_day_id path string true "Race Day ID"
// @Success 204
// @Router /race-days/{race_day_id} [delete]
func (c *RaceController) deleteRaceDayHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceDayId, ok := uuidParam(ctx, "race_day_id")
		if !ok {
			return
		}
		if err := c.raceService.DeleteRaceDay(raceDayId); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(204, nil)
	}
}

// @id GetResults
// @Description List the results of a race day ordered by position
// @Tags race
// @Produce json
// @Param race_day_id path string true "Race Day ID"
// @Success 200 {array} RaceResult
// @Router /race-days/{race_day_id}/results [get]
func (c *RaceController) getResultsHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceDayId, ok := uuidParam(ctx, "race_day_id")
		if !ok {
			return
		}
		results, err := c.raceService.GetResultsForDay(raceDayId)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, utils.Map(results, toRaceResultResponse))
	}
}

// @id ReplaceResults
// @Description Replace the complete result set of a race day
// @Tags race
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param race_day_id path string true "Race Day ID"
// @Param body body []RaceResultCreate true "Full result list"
// @Success 200 {array} RaceResult
// @Router /race-days/{race_day_id}/results [put]
func (c *RaceController) replaceResultsHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceDayId, ok := uuidParam(ctx, "race_day_id")
		if !ok {
			return
		}
		var resultCreates []RaceResultCreate
		if err := ctx.BindJSON(&resultCreates); err != nil {
			ctx.JSON(400, gin.H{"error": err.Error()})
			return
		}
		results := utils.Map(resultCreates, func(create RaceResultCreate) *repository.RaceResult {
			return create.toModel()
		})
		saved, err := c.raceService.ReplaceResults(raceDayId, results)
		if err != nil {
			app_error.Respond(ctx, err)
			return
		}
		ctx.JSON(200, utils.Map(saved, toRaceResultResponse))
	}
}

type RaceCreate struct {
	Name              string  `json:"name"`
	Address           string  `json:"address"`
	GpsLocation       *string `json:"gps_location"`
	ManagementContact *string `json:"management_contact"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Status            string  `json:"status"`
	TrackLengthMeters int     `json:"track_length_meters"`
	TrackLengthUnit   string  `json:"track_length_unit"`
	Description       *string `json:"description"`
	VillageId         *string `json:"village_id"`
}

func (r *RaceCreate) toModel() (*repository.Race, error) {
	race := &repository.Race{
		Name:              r.Name,
		Address:           r.Address,
		GpsLocation:       r.GpsLocation,
		ManagementContact: r.ManagementContact,
		Status:            repository.RaceStatus(r.Status),
		TrackLengthMeters: r.TrackLengthMeters,
		TrackLengthUnit:   r.TrackLengthUnit,
		Description:       r.Description,
	}
	if r.StartDate != "" {
		startDate, err := time.Parse(dateLayout, r.StartDate)
		if err != nil {
			return nil, err
		}
		race.StartDate = startDate
	}
	if r.EndDate != "" {
		endDate, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return nil, err
		}
		race.EndDate = endDate
	}
	if r.VillageId != nil {
		villageId, err := uuid.Parse(*r.VillageId)
		if err != nil {
			return nil, err
		}
		race.VillageId = &villageId
	}
	return race, nil
}

type Race struct {
	Id                string     `json:"id"`
	Name              string     `json:"name"`
	Address           string     `json:"address"`
	GpsLocation       *string    `json:"gps_location"`
	ManagementContact *string    `json:"management_contact"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	Status            string     `json:"status"`
	TrackLengthMeters int        `json:"track_length_meters"`
	TrackLengthUnit   string     `json:"track_length_unit"`
	Description       *string    `json:"description"`
	VillageId         *string    `json:"village_id"`
	Days              []*RaceDay `json:"days,omitempty"`
}

func toRaceResponse(race *repository.Race) *Race {
	if race == nil {
		return nil
	}
	response := &Race{
		Id:                race.Id.String(),
		Name:              race.Name,
		Address:           race.Address,
		GpsLocation:       race.GpsLocation,
		ManagementContact: race.ManagementContact,
		StartDate:         race.StartDate.Format(dateLayout),
		EndDate:           race.EndDate.Format(dateLayout),
		Status:            string(race.Status),
		TrackLengthMeters: race.TrackLengthMeters,
		TrackLengthUnit:   race.TrackLengthUnit,
		Description:       race.Description,
	}
	if race.VillageId != nil {
		villageId := race.VillageId.String()
		response.VillageId = &villageId
	}
	if race.Days != nil {
		response.Days = utils.Map(race.Days, toRaceDayResponse)
	}
	return response
}

type RaceDayCreate struct {
	DayNumber   int     `json:"day_number"`
	RaceDate    string  `json:"race_date"`
	DaySubtitle *string `json:"day_subtitle"`
	Status      string  `json:"status"`
}

func (r *RaceDayCreate) toModel() (*repository.RaceDay, error) {
	day := &repository.RaceDay{
		DayNumber:   r.DayNumber,
		DaySubtitle: r.DaySubtitle,
		Status:      repository.RaceStatus(r.Status),
	}
	if r.RaceDate != "" {
		raceDate, err := time.Parse(dateLayout, r.RaceDate)
		if err != nil {
			return nil, err
		}
		day.RaceDate = raceDate
	}
	return day, nil
}

type RaceDay struct {
	Id                string  `json:"id"`
	RaceId            string  `json:"race_id"`
	DayNumber         int     `json:"day_number"`
	RaceDate          string  `json:"race_date"`
	DaySubtitle       *string `json:"day_subtitle"`
	Status            string  `json:"status"`
	TotalParticipants int     `json:"total_participants"`
}

func toRaceDayResponse(day *repository.RaceDay) *RaceDay {
	if day == nil {
		return nil
	}
	return &RaceDay{
		Id:                day.Id.String(),
		RaceId:            day.RaceId.String(),
		DayNumber:         day.DayNumber,
		RaceDate:          day.RaceDate.Format(dateLayout),
		DaySubtitle:       day.DaySubtitle,
		Status:            string(day.Status),
		TotalParticipants: day.TotalParticipants,
	}
}

type RaceResultCreate struct {
	Bull1Id                *uuid.UUID `json:"bull1_id"`
	Bull2Id                *uuid.UUID `json:"bull2_id"`
	Owner1Id               *uuid.UUID `json:"owner1_id"`
	Owner2Id               *uuid.UUID `json:"owner2_id"`
	Position               int        `json:"position" binding:"required"`
	TimeMilliseconds       int        `json:"time_milliseconds" binding:"required"`
	IsDisqualified         bool       `json:"is_disqualified"`
	DisqualificationReason *string    `json:"disqualification_reason"`
	Notes                  *string    `json:"notes"`
}

func (r *RaceResultCreate) toModel() *repository.RaceResult {
	return &repository.RaceResult{
		Bull1Id:                r.Bull1Id,
		Bull2Id:                r.Bull2Id,
		Owner1Id:               r.Owner1Id,
		Owner2Id:               r.Owner2Id,
		Position:               r.Position,
		TimeMilliseconds:       r.TimeMilliseconds,
		IsDisqualified:         r.IsDisqualified,
		DisqualificationReason: r.DisqualificationReason,
		Notes:                  r.Notes,
	}
}

type RaceResult struct {
	Id                     string  `json:"id"`
	RaceDayId              string  `json:"race_day_id"`
	Bull1                  *Bull   `json:"bull1"`
	Bull2                  *Bull   `json:"bull2"`
	Owner1                 *Owner  `json:"owner1"`
	Owner2                 *Owner  `json:"owner2"`
	Position               int     `json:"position"`
	TimeMilliseconds       int     `json:"time_milliseconds"`
	IsDisqualified         bool    `json:"is_disqualified"`
	DisqualificationReason *string `json:"disqualification_reason"`
	Notes                  *string `json:"notes"`
}

func toRaceResultResponse(result *repository.RaceResult) *RaceResult {
	if result == nil {
		return nil
	}
	return &RaceResult{
		Id:                     result.Id.String(),
		RaceDayId:              result.RaceDayId.String(),
		Bull1:                  toBullResponse(result.Bull1),
		Bull2:                  toBullResponse(result.Bull2),
		Owner1:                 toOwnerResponse(result.Owner1),
		Owner2:                 toOwnerResponse(result.Owner2),
		Position:               result.Position,
		TimeMilliseconds:       result.TimeMilliseconds,
		IsDisqualified:         result.IsDisqualified,
		DisqualificationReason: result.DisqualificationReason,
		Notes:                  result.Notes,
	}
}
