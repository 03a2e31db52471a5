package domain

import "time"

// AirQualityLocation describes where a report was measured.
type AirQualityLocation struct {
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	Country      string  `json:"country"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// AirQualityCurrent is the most recent reading.
type AirQualityCurrent struct {
	Datetime    time.Time `json:"datetime"`
	AQI         int       `json:"AQI"`
	AQICategory string    `json:"AQI_category"`
	AQIColor    string    `json:"AQI_color"`
	NO2         float64   `json:"NO2"`
	O3          float64   `json:"O3"`
	PM25        float64   `json:"PM25"`
}

// AirQualityDaily holds hourly series for the current day.
type AirQualityDaily struct {
	Hours []string  `json:"hours"`
	AQI   []int     `json:"AQI"`
	NO2   []float64 `json:"NO2"`
	O3    []float64 `json:"O3"`
	PM25  []float64 `json:"PM25"`
}

// AirQualityReport is the full payload served by the air-quality endpoint.
type AirQualityReport struct {
	Location AirQualityLocation `json:"location"`
	Current  AirQualityCurrent  `json:"current"`
	Daily    AirQualityDaily    `json:"daily"`
}
