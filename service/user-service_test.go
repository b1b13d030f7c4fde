package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateAdminDefaultsToAdminPermission(t *testing.T) {
	defer clearTables()
	svc := NewUserService(db)

	admin, err := svc.CreateAdmin("ops", "secret", nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"admin"}, []string(admin.Permissions))

	scoped, err := svc.CreateAdmin("scorer", "secret", nil, []string{"results"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"results"}, []string(scoped.Permissions))
}
