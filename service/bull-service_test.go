package service

import (
	"testing"

	"sharyat/repository"

	"github.com/stretchr/testify/assert"
)

func TestUpdateBullKeepsActiveFlagWhenOmitted(t *testing.T) {
	defer clearTables()
	_, bulls := seedBulls("Sarja")
	svc := NewBullService(db)

	updated, err := svc.UpdateBull(bulls[0].Id, &repository.Bull{Name: "Sarja II"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Sarja II", updated.Name)
	assert.True(t, updated.IsActive, "an update without is_active keeps the bull active")

	inactive := false
	updated, err = svc.UpdateBull(bulls[0].Id, &repository.Bull{}, &inactive)
	assert.NoError(t, err)
	assert.False(t, updated.IsActive)

	active := true
	updated, err = svc.UpdateBull(bulls[0].Id, &repository.Bull{}, &active)
	assert.NoError(t, err)
	assert.True(t, updated.IsActive)
}
