package service

import (
	"context"
	"encoding/json"
	"fmt"

	"sharyat/config"
	"sharyat/repository"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationMessage is the payload queued for the push dispatcher. Delivery
// to FCM happens asynchronously; a write here only means "accepted for send".
type NotificationMessage struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type NotificationService struct {
	deviceTokenRepository *repository.DeviceTokenRepository
	raceRepository        *repository.RaceRepository
	writer                *kafka.Writer
}

func NewNotificationService(db *gorm.DB) (*NotificationService, error) {
	writer, err := config.GetNotificationWriter()
	if err != nil {
		return nil, err
	}
	return &NotificationService{
		deviceTokenRepository: repository.NewDeviceTokenRepository(db),
		raceRepository:        repository.NewRaceRepository(db),
		writer:                writer,
	}, nil
}

// RegisterDeviceToken is idempotent on the token string. Re-registering an
// existing token re-binds it to the given user, which covers the app being
// reinstalled or a new login on the same device.
func (s *NotificationService) RegisterDeviceToken(token, platform string, userId *uuid.UUID) (*repository.DeviceToken, error) {
	existing, err := s.deviceTokenRepository.GetByToken(token)
	if err == nil {
		existing.Platform = platform
		existing.UserId = userId
		return s.deviceTokenRepository.Save(existing)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return s.deviceTokenRepository.Save(&repository.DeviceToken{
		DeviceToken: token,
		Platform:    platform,
		UserId:      userId,
	})
}

func (s *NotificationService) UnregisterDeviceToken(token string) error {
	return s.deviceTokenRepository.DeleteByToken(token)
}

// raceAnnouncement composes the broadcast payload for a race: title is the
// race name, body is its address and start date.
func raceAnnouncement(race *repository.Race) NotificationMessage {
	return NotificationMessage{
		Title: race.Name,
		Body:  fmt.Sprintf("%s, %s", race.Address, race.StartDate.Format("02 Jan 2006")),
		Data: map[string]string{
			"type":    "race_announcement",
			"race_id": race.Id.String(),
		},
	}
}

// AnnounceRace queues a broadcast push about a race to all registered
// devices.
func (s *NotificationService) AnnounceRace(ctx context.Context, raceId uuid.UUID) error {
	race, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		return err
	}
	return s.publish(ctx, raceAnnouncement(race))
}

// Announce queues a free-form broadcast push.
func (s *NotificationService) Announce(ctx context.Context, title, body string) error {
	return s.publish(ctx, NotificationMessage{
		Title: title,
		Body:  body,
		Data:  map[string]string{"type": "announcement"},
	})
}

func (s *NotificationService) publish(ctx context.Context, message NotificationMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	if err := s.writer.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
		return err
	}
	logrus.WithField("title", message.Title).Info("queued push notification")
	return nil
}
