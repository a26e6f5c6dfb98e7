package inbound

import (
	"time"

	"github.com/dailyvegies/api/internal/advisory/entity"
)

type ForecastPointResponse struct {
	At        time.Time `json:"at"`
	Temp      float64   `json:"temp"`
	Humidity  int32     `json:"humidity"`
	Condition string    `json:"condition"`
	WindSpeed float64   `json:"wind_speed"`
}

type WeatherResponse struct {
	City string                  `json:"city"`
	List []ForecastPointResponse `json:"list"`
}

func newWeatherResponse(f entity.Forecast) WeatherResponse {
	out := WeatherResponse{City: f.City, List: make([]ForecastPointResponse, 0, len(f.Points))}
	for _, p := range f.Points {
		out.List = append(out.List, ForecastPointResponse{
			At:        p.At,
			Temp:      p.Temp,
			Humidity:  p.Humidity,
			Condition: p.Condition,
			WindSpeed: p.WindSpeed,
		})
	}

	return out
}

type GuideRequest struct {
	Crop     string `json:"crop"`
	Question string `json:"question"`
	Location string `json:"location"`
}

type GuideResponse struct {
	Answer string `json:"answer"`
}

type GeocodeResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
