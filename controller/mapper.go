package controller

import (
	"strconv"

	"sharyat/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uuidParam parses a path parameter as a UUID and answers 400 itself on
// failure. Callers bail out when ok is false.
func uuidParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(400, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func paginationParams(ctx *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// currentUserId reads the authenticated subject the middleware stored.
func currentUserId(ctx *gin.Context) (uuid.UUID, bool) {
	value, exists := ctx.Get("claims")
	if !exists {
		ctx.JSON(401, gin.H{"error": "Unauthenticated"})
		return uuid.Nil, false
	}
	claims := value.(*auth.Claims)
	userId, err := uuid.Parse(claims.UserId)
	if err != nil {
		ctx.JSON(401, gin.H{"error": "Unauthenticated"})
		return uuid.Nil, false
	}
	return userId, true
}

type PaginatedResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}
