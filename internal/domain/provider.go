package domain

import "context"

// WeatherProvider supplies current weather for a coordinate.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, c Coordinate) (WeatherObservation, error)
}

// SeismicProvider supplies recent earthquakes near a coordinate.
type SeismicProvider interface {
	// RecentEvents returns events within radiusKm of c, newest first.
	RecentEvents(ctx context.Context, c Coordinate, radiusKm float64) ([]SeismicEvent, error)
}
