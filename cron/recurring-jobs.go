package cron

import (
	"time"

	"sharyat/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StartRecurringJobs wires the scheduled maintenance work: daily listing
// expiry and the monthly leaderboard rebuild. Returns the scheduler so the
// caller can stop it on shutdown.
func StartRecurringJobs(db *gorm.DB) (*cron.Cron, error) {
	userBullService := service.NewUserBullService(db)
	leaderboardService := service.NewLeaderboardService(db)

	scheduler := cron.New(cron.WithLocation(time.UTC))

	// listings expire 30 days after creation; sweep once a day
	if _, err := scheduler.AddFunc("30 0 * * *", func() {
		if _, err := userBullService.ExpireOverdueListings(); err != nil {
			logrus.WithError(err).Error("listing expiry sweep failed")
		}
	}); err != nil {
		return nil, err
	}

	// rebuild the previous month's leaderboards shortly after month rollover
	if _, err := scheduler.AddFunc("0 2 1 * *", func() {
		previous := time.Now().UTC().AddDate(0, -1, 0)
		count, err := leaderboardService.RefreshAllForMonth(previous.Year(), int(previous.Month()))
		if err != nil {
			logrus.WithError(err).Error("monthly leaderboard refresh failed")
			return
		}
		logrus.WithField("count", count).Info("monthly leaderboards refreshed")
	}); err != nil {
		return nil, err
	}

	scheduler.Start()
	return scheduler, nil
}
