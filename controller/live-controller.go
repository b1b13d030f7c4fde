package controller

import (
	"net/http"

	"sharyat/app_error"
	"sharyat/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the app and panel run on separate origins
	CheckOrigin: func(r *http.Request) bool { return true },
}

type LiveController struct {
	raceService *service.RaceService
	liveService *service.LiveService
}

func NewLiveController(db *gorm.DB) *LiveController {
	return &LiveController{
		raceService: service.NewRaceService(db),
		liveService: service.GetLiveService(),
	}
}

func setupLiveController(db *gorm.DB) []RouteInfo {
	c := NewLiveController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/race-days/:race_day_id/live", HandlerFunc: c.liveResultsHandler()},
	}
	return routes
}

// @id LiveResults
// @Description Subscribe to live result updates of a race day over websocket
// @Tags race
// @Param race_day_id path string true "Race Day ID"
// @Router /race-days/{race_day_id}/live [get]
func (c *LiveController) liveResultsHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raceDayId, ok := uuidParam(ctx, "race_day_id")
		if !ok {
			return
		}
		if _, err := c.raceService.GetRaceDayById(raceDayId); err != nil {
			app_error.Respond(ctx, err)
			return
		}
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			logrus.WithError(err).Warn("websocket upgrade failed")
			return
		}
		c.liveService.Subscribe(raceDayId, conn)
		// the read loop only exists to detect the client going away
		go func() {
			defer c.liveService.Unsubscribe(raceDayId, conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
