// Package domain models multi-hazard risk assessments for locations in India.
//
// # Hazards
//
// Five hazard types are scored independently: flood, earthquake, landslide,
// cyclone, and drought. Each produces a [HazardAssessment] with a score, a
// tier, an ordered list of contributing factors, and the distance to the
// nearest catalog zone that contains the point.
//
// # Tiers
//
// Scores map to tiers through a single threshold function, [ScoreToTier]:
//
//	score >= 60  critical
//	score >= 35  high
//	score >= 15  medium
//	otherwise    low
//
// Every place that changes a score goes through [HazardAssessment.Rescore]
// so score and tier stay in agreement.
//
// # Inputs
//
// Weather and seismic observations come from external collaborators
// ([WeatherProvider], [SeismicProvider]) and are optional. Absent weather is
// replaced by [DefaultWeather]:
//
//	temperature 25 C, humidity 50 %, pressure 1013 hPa, wind 0 m/s, "clear"
//
// Non-finite weather fields are replaced field by field with the same
// defaults. Absent seismic input is an empty event list.
//
// # Coordinates
//
// Coordinates are WGS-84 degrees. Distances use the haversine formula on a
// sphere of radius 6,371,000 m (see [DistanceMeters]). A coordinate with a
// NaN or infinite component is the only fatal input ([ErrInvalidInput]);
// finite values outside the valid range are clamped by [Coordinate.Clamp].
package domain
