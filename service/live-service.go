package service

import (
	"sync"
	"time"

	"sharyat/repository"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// LiveService fans result updates out to websocket subscribers, keyed by race
// day. The admin panel pushes a result set; every open timing screen for that
// day gets the new standings.
type LiveService struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[*websocket.Conn]bool
}

var (
	liveService *LiveService
	onceLive    sync.Once
)

// GetLiveService returns the process-wide hub. Connections are shared across
// controllers so a single instance is required.
func GetLiveService() *LiveService {
	onceLive.Do(func() {
		liveService = &LiveService{
			subscribers: make(map[uuid.UUID]map[*websocket.Conn]bool),
		}
	})
	return liveService
}

func (s *LiveService) Subscribe(raceDayId uuid.UUID, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribers[raceDayId] == nil {
		s.subscribers[raceDayId] = make(map[*websocket.Conn]bool)
	}
	s.subscribers[raceDayId][conn] = true
}

func (s *LiveService) Unsubscribe(raceDayId uuid.UUID, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers[raceDayId], conn)
	if len(s.subscribers[raceDayId]) == 0 {
		delete(s.subscribers, raceDayId)
	}
	_ = conn.Close()
}

type LiveResultUpdate struct {
	RaceDayId         string          `json:"race_day_id"`
	Status            string          `json:"status"`
	TotalParticipants int             `json:"total_participants"`
	Results           []LiveResultRow `json:"results"`
}

type LiveResultRow struct {
	Position         int  `json:"position"`
	TimeMilliseconds int  `json:"time_milliseconds"`
	IsDisqualified   bool `json:"is_disqualified"`
}

// BroadcastResults pushes the new standings of a day to its subscribers.
// Dead connections are dropped on write failure.
func (s *LiveService) BroadcastResults(day *repository.RaceDay, results []*repository.RaceResult) {
	s.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(s.subscribers[day.Id]))
	for conn := range s.subscribers[day.Id] {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()
	if len(conns) == 0 {
		return
	}

	update := LiveResultUpdate{
		RaceDayId:         day.Id.String(),
		Status:            string(day.Status),
		TotalParticipants: day.TotalParticipants,
		Results:           make([]LiveResultRow, 0, len(results)),
	}
	for _, result := range results {
		update.Results = append(update.Results, LiveResultRow{
			Position:         result.Position,
			TimeMilliseconds: result.TimeMilliseconds,
			IsDisqualified:   result.IsDisqualified,
		})
	}

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(update); err != nil {
			logrus.WithError(err).Debug("dropping dead live subscriber")
			s.Unsubscribe(day.Id, conn)
		}
	}
}
