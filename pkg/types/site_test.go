// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatesDecimal(t *testing.T) {
	tests := []struct {
		name      string
		c         Coordinates
		lat, long float64
		errMsg    string
	}{
		{name: "plain", c: Coordinates{"41.39", "-81.73"}, lat: 41.39, long: -81.73},
		{name: "signed and padded with zeros", c: Coordinates{"+039.70", "-104.9877"}, lat: 39.7, long: -104.9877},
		{name: "bad latitude", c: Coordinates{"north", "2"}, errMsg: "latitude"},
		{name: "bad longitude", c: Coordinates{"1", "west"}, errMsg: "longitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, long, err := tt.c.Decimal()
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.lat, lat, 1e-9)
			assert.InDelta(t, tt.long, long, 1e-9)
		})
	}
}

func TestSiteRecordHasFeature(t *testing.T) {
	r := &SiteRecord{Features: []string{"http://library.link/ext/feature/a"}}
	assert.True(t, r.HasFeature("http://library.link/ext/feature/a"))
	assert.False(t, r.HasFeature("http://library.link/ext/feature/b"))
}
