package shared_test

import (
	"context"
	"errors"
	"meetroom/shared"
	cacheMocks "meetroom/shared/cache/mocks"
	"meetroom/shared/constant"
	"meetroom/shared/dto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		ReserverName *string `db:"reserver_name"`
		Email        *string `db:"email"`
		Status       string  `db:"status"`
		Note         string
		Ignored      string `db:"-"`
	}

	name := "Jane"

	result := shared.TransformFields(patch{ReserverName: &name, Note: "skip", Ignored: "skip"})

	assert.Equal(t, "Jane", result["reserver_name"])
	assert.NotContains(t, result, "email")
	assert.NotContains(t, result, "status")
	assert.NotContains(t, result, "-")
	assert.IsType(t, time.Time{}, result[constant.FieldUpdatedAt])
	assert.Len(t, result, 2)

	empty := shared.TransformFields(&patch{})
	assert.Len(t, empty, 1)
	assert.Contains(t, empty, constant.FieldUpdatedAt)
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("550e8400-e29b-41d4-a716-446655440000", "id", "bookings")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "550e8400-e29b-41d4-a716-446655440000",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
		},
	}, result)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:42", shared.BuildCacheKey("booking", "get", "42"))
	assert.Equal(t, "booking", shared.BuildCacheKey("booking"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	type filter struct {
		Status string
		Email  string
	}

	first := shared.BuildCacheKeyWithQuery("booking:list", dto.QueryParams{Page: 1, Limit: 10}, filter{Status: "confirmed"})
	same := shared.BuildCacheKeyWithQuery("booking:list", dto.QueryParams{Page: 1, Limit: 10}, filter{Status: "confirmed"})
	other := shared.BuildCacheKeyWithQuery("booking:list", dto.QueryParams{Page: 2, Limit: 10}, filter{Status: "confirmed"})

	assert.Equal(t, first, same)
	assert.NotEqual(t, first, other)
	assert.True(t, strings.HasPrefix(first, "booking:list:"))
	assert.Equal(t, "booking:list", shared.BuildCacheKeyWithQuery("booking:list"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := cacheMocks.NewMockRedisCache(ctrl)

	gomock.InOrder(
		cache.EXPECT().Clear(gomock.Any(), "booking:get*").Return(errors.New("redis down")),
		cache.EXPECT().Clear(gomock.Any(), "booking:list*").Return(nil),
	)

	shared.InvalidateCaches(context.Background(), cache, "booking:get", "booking:list")
}
