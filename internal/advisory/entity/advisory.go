package entity

import "time"

// Forecast is a processed weather forecast for a coordinate.
type Forecast struct {
	City   string
	Points []ForecastPoint
}

// ForecastPoint is one forecast slot from the upstream provider.
type ForecastPoint struct {
	At        time.Time
	Temp      float64
	Humidity  int32
	Condition string
	WindSpeed float64
}

// Place is a geocoded location.
type Place struct {
	Name string
	Lat  float64
	Lon  float64
}
