package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"

	"github.com/commonweal/commonweal/internal/domain"
)

// ParseLocation converts either wire form of a community location into
// decimal degrees: a "lat,lng" string, or an object with lat/lng members
// that may themselves be numbers or numeric strings.
func ParseLocation(v gjson.Result) (*domain.Location, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}

	var latRaw, lngRaw any
	switch {
	case v.IsObject():
		latRaw = v.Get("lat").Value()
		lngRaw = v.Get("lng").Value()
	case v.Type == gjson.String:
		parts := strings.SplitN(v.String(), ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("location %q: want \"lat,lng\"", v.String())
		}
		latRaw, lngRaw = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	default:
		return nil, fmt.Errorf("location: unsupported wire form %s", v.Type)
	}

	lat, err := cast.ToFloat64E(latRaw)
	if err != nil {
		return nil, fmt.Errorf("location latitude: %w", err)
	}
	lng, err := cast.ToFloat64E(lngRaw)
	if err != nil {
		return nil, fmt.Errorf("location longitude: %w", err)
	}

	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("location latitude %v out of range", lat)
	}
	if lng < -180 || lng > 180 {
		return nil, fmt.Errorf("location longitude %v out of range", lng)
	}

	return &domain.Location{Lat: lat, Lng: lng}, nil
}

// FormatLocation renders a location in the compact "lat,lng" wire form.
func FormatLocation(l domain.Location) string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}
