package app_error

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 404, HTTPStatus(NotFound("race %s not found", "x")))
	assert.Equal(t, 400, HTTPStatus(InvalidRange("bad range")))
	assert.Equal(t, 400, HTTPStatus(DuplicateDayNumber("day 2 exists")))
	assert.Equal(t, 400, HTTPStatus(DuplicatePosition("position 1 taken")))
	assert.Equal(t, 400, HTTPStatus(ConstraintViolation("cap reached")))
	assert.Equal(t, 404, HTTPStatus(gorm.ErrRecordNotFound))
	assert.Equal(t, 500, HTTPStatus(fmt.Errorf("boom")))
}

func TestIsKind(t *testing.T) {
	err := DuplicateDayNumber("day %d exists", 2)
	assert.True(t, IsKind(err, KindDuplicateDayNumber))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(fmt.Errorf("boom"), KindDuplicateDayNumber))
	assert.False(t, IsKind(nil, KindNotFound))
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	err := fmt.Errorf("saving day: %w", DuplicatePosition("position 1 taken"))
	assert.True(t, IsKind(err, KindDuplicatePosition))
	assert.Equal(t, 400, HTTPStatus(err))
}
