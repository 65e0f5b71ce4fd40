package domain

import (
	"context"
	"log/slog"
)

// EnrichWithPlaceName attempts to attach a place name to the well's surface
// location. If geocoder is nil, the coordinates are unparseable, or the lookup
// fails, the record is returned unchanged (graceful degradation).
func EnrichWithPlaceName(ctx context.Context, well WellRecord, geocoder Geocoder, logger *slog.Logger) WellRecord {
	if geocoder == nil {
		return well
	}

	pos := ResolvePosition(well.Location)
	if pos.Fallback {
		logger.Warn("skipping reverse geocoding, location not in DMS format",
			"well", well.Name,
			"lat", well.Location.Lat,
			"long", well.Location.Long,
		)
		return well
	}

	result, err := geocoder.ReverseGeocode(ctx, pos.Lat, pos.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"well", well.Name,
			"lat", pos.Lat,
			"lon", pos.Lon,
			"error", err,
		)
		return well
	}

	switch {
	case result.FormattedAddress != "":
		well.Location.PlaceName = result.FormattedAddress
	case result.PlaceName != "":
		well.Location.PlaceName = result.PlaceName
	}
	return well
}
