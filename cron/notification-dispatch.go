package cron

import (
	"context"
	"encoding/json"

	"sharyat/client"
	"sharyat/config"
	"sharyat/repository"
	"sharyat/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var pushesSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pushes_sent_total",
	Help: "Push notifications sent, by outcome",
}, []string{"outcome"})

// DispatchService drains the notification queue and fans each message out to
// every registered device. Running it on a consumer group means a restart
// resumes where the previous process stopped.
type DispatchService struct {
	ctx                   context.Context
	fcmClient             *client.FCMClient
	deviceTokenRepository *repository.DeviceTokenRepository
}

func NewDispatchService(ctx context.Context, db *gorm.DB) (*DispatchService, error) {
	fcmClient, err := client.NewFCMClient(ctx)
	if err != nil {
		return nil, err
	}
	return &DispatchService{
		ctx:                   ctx,
		fcmClient:             fcmClient,
		deviceTokenRepository: repository.NewDeviceTokenRepository(db),
	}, nil
}

// Run blocks until the context is cancelled or the reader fails.
func (d *DispatchService) Run() error {
	reader, err := config.GetNotificationReader()
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(d.ctx)
		if err != nil {
			return err
		}
		var message service.NotificationMessage
		if err := json.Unmarshal(msg.Value, &message); err != nil {
			logrus.WithError(err).Warn("dropping malformed notification message")
			continue
		}
		d.dispatch(message)
	}
}

func (d *DispatchService) dispatch(message service.NotificationMessage) {
	tokens, err := d.deviceTokenRepository.FindAll()
	if err != nil {
		logrus.WithError(err).Error("loading device tokens failed")
		return
	}
	for _, token := range tokens {
		err := d.fcmClient.Send(d.ctx, token.DeviceToken, message.Title, message.Body, message.Data)
		switch err {
		case nil:
			pushesSentTotal.WithLabelValues("sent").Inc()
		case client.ErrUnregisteredToken:
			pushesSentTotal.WithLabelValues("unregistered").Inc()
			// a dead token stays dead; drop it so future broadcasts shrink
			if err := d.deviceTokenRepository.DeleteByToken(token.DeviceToken); err != nil {
				logrus.WithError(err).Warn("pruning dead device token failed")
			}
		default:
			pushesSentTotal.WithLabelValues("failed").Inc()
			logrus.WithError(err).Warn("push delivery failed")
		}
	}
	logrus.WithFields(logrus.Fields{
		"title":   message.Title,
		"devices": len(tokens),
	}).Info("notification dispatched")
}
