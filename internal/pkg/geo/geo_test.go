package geo

import (
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDistance(t *testing.T) {
	t.Run("identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Distance(-6.2, 106.8166, -6.2, 106.8166))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Distance(-6.2, 106.8166, -7.2575, 112.7521)
		b := Distance(-7.2575, 112.7521, -6.2, 106.8166)
		assert.InDelta(t, a, b, 1e-6)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		assert.InDelta(t, 111195, Distance(0, 0, 1, 0), 1)
	})
}

func TestInside(t *testing.T) {
	hq := office.Office{
		ID:        "office-1",
		Latitude:  ptr(-6.2),
		Longitude: ptr(106.8166),
	}

	t.Run("missing device coordinates", func(t *testing.T) {
		inside, dist := Inside(nil, ptr(106.8166), hq, 200)
		assert.False(t, inside)
		assert.Nil(t, dist)
	})

	t.Run("missing office coordinates", func(t *testing.T) {
		inside, dist := Inside(ptr(-6.2), ptr(106.8166), office.Office{ID: "office-2"}, 200)
		assert.False(t, inside)
		assert.Nil(t, dist)
	})

	t.Run("default radius", func(t *testing.T) {
		// ~111 m north of the office
		inside, dist := Inside(ptr(-6.199), ptr(106.8166), hq, 200)
		require.NotNil(t, dist)
		assert.True(t, inside)
		assert.InDelta(t, 111, *dist, 1)
	})

	t.Run("outside configured radius", func(t *testing.T) {
		small := hq
		small.AllowedRadiusMeters = ptr(50)
		inside, dist := Inside(ptr(-6.199), ptr(106.8166), small, 200)
		require.NotNil(t, dist)
		assert.False(t, inside)
	})

	t.Run("non-positive radius falls back to default", func(t *testing.T) {
		zero := hq
		zero.AllowedRadiusMeters = ptr(0)
		inside, _ := Inside(ptr(-6.199), ptr(106.8166), zero, 200)
		assert.True(t, inside)
	})

	t.Run("caller supplied default radius", func(t *testing.T) {
		inside, dist := Inside(ptr(-6.199), ptr(106.8166), hq, 100)
		require.NotNil(t, dist)
		assert.False(t, inside)
	})
}
