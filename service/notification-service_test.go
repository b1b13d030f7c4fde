package service

import (
	"testing"
	"time"

	"sharyat/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRaceAnnouncement(t *testing.T) {
	race := &repository.Race{
		Id:        uuid.New(),
		Name:      "Jatra Sharyat",
		Address:   "Vadgaon Maval",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	message := raceAnnouncement(race)

	assert.Equal(t, "Jatra Sharyat", message.Title)
	assert.Equal(t, "Vadgaon Maval, 01 Jun 2025", message.Body)
	assert.Equal(t, "race_announcement", message.Data["type"])
	assert.Equal(t, race.Id.String(), message.Data["race_id"])
}
