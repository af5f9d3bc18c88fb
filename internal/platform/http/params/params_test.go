package params

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account_backend/internal/shared/pagination"
)

func testContext(target string, params ...gin.Param) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params
	return c
}

func TestPageable(t *testing.T) {
	def := pagination.Sort{Field: "eventTime", Desc: true}

	tests := []struct {
		name    string
		target  string
		want    pagination.Pageable
		wantErr bool
	}{
		{name: "defaults", target: "/", want: pagination.Pageable{Page: 0, Size: 10, Sort: def}},
		{name: "explicit", target: "/?page=2&size=5&sort=username,asc", want: pagination.Pageable{Page: 2, Size: 5, Sort: pagination.Sort{Field: "username"}}},
		{name: "size capped", target: "/?size=1000", want: pagination.Pageable{Page: 0, Size: 100, Sort: def}},
		{name: "negative page clamped", target: "/?page=-3", want: pagination.Pageable{Page: 0, Size: 10, Sort: def}},
		{name: "huge page capped", target: "/?page=9223372036854775807&size=10", want: pagination.Pageable{Page: math.MaxInt / 10, Size: 10, Sort: def}},
		{name: "bad page", target: "/?page=x", wantErr: true},
		{name: "bad size", target: "/?size=1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pageable(testContext(tt.target), def)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathUint(t *testing.T) {
	id, err := PathUint(testContext("/", gin.Param{Key: "id", Value: "42"}), "id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-1", "abc"} {
		_, err := PathUint(testContext("/", gin.Param{Key: "id", Value: raw}), "id")
		assert.Error(t, err, raw)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339 utc", "2026-01-02T03:04:05Z", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"rfc3339 offset", "2026-01-02T05:04:05+02:00", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"local date-time read as utc", "2024-01-01T10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime("startDate", tt.raw)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}

	missing, err := ParseTime("endDate", "")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	for _, raw := range []string{"yesterday", "2024-01-01", "2024-01-01 10:00:00"} {
		_, err := ParseTime("endDate", raw)
		assert.Error(t, err, raw)
	}
}
