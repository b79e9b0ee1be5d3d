package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidwall/gjson"

	"github.com/commonweal/commonweal/internal/domain"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    *domain.Location
		wantErr bool
	}{
		{name: "absent", doc: `{}`, want: nil},
		{name: "null", doc: `{"location": null}`, want: nil},
		{name: "object", doc: `{"location": {"lat": 45.52, "lng": -122.67}}`, want: &domain.Location{Lat: 45.52, Lng: -122.67}},
		{name: "object with numeric strings", doc: `{"location": {"lat": "45.52", "lng": "-122.67"}}`, want: &domain.Location{Lat: 45.52, Lng: -122.67}},
		{name: "compact string", doc: `{"location": "45.52, -122.67"}`, want: &domain.Location{Lat: 45.52, Lng: -122.67}},
		{name: "string missing lng", doc: `{"location": "45.52"}`, wantErr: true},
		{name: "non numeric", doc: `{"location": {"lat": "north", "lng": 0}}`, wantErr: true},
		{name: "latitude out of range", doc: `{"location": "91,0"}`, wantErr: true},
		{name: "longitude out of range", doc: `{"location": "0,181"}`, wantErr: true},
		{name: "unsupported form", doc: `{"location": [45.52, -122.67]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(gjson.Get(tt.doc, "location"))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want.Lat, got.Lat, 1e-9)
			assert.InDelta(t, tt.want.Lng, got.Lng, 1e-9)
		})
	}
}

func TestFormatLocation(t *testing.T) {
	assert.Equal(t, "45.52,-122.67", FormatLocation(domain.Location{Lat: 45.52, Lng: -122.67}))
	assert.Equal(t, "0,0", FormatLocation(domain.Location{}))
}
