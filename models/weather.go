package models

import "time"

type WeatherReading struct {
	StationID     string    `json:"station_id" parquet:"station_id"`
	Timestamp     time.Time `json:"timestamp" parquet:"timestamp,timestamp(microsecond)"`
	Lat           float64   `json:"location_lat" parquet:"location_lat"`
	Lon           float64   `json:"location_lon" parquet:"location_lon"`
	Temperature   float64   `json:"temperature" parquet:"temperature"`
	Humidity      float64   `json:"humidity" parquet:"humidity"`
	WindSpeed     float64   `json:"wind_speed" parquet:"wind_speed"`
	WindDirection float64   `json:"wind_direction" parquet:"wind_direction"`
	Precipitation float64   `json:"precipitation" parquet:"precipitation"`
	Pressure      float64   `json:"pressure" parquet:"pressure"`
}

var WeatherColumns = []string{
	"station_id", "timestamp", "location_lat", "location_lon",
	"temperature", "humidity", "wind_speed", "wind_direction",
	"precipitation", "pressure",
}

func (r WeatherReading) Values() []any {
	return []any{
		r.StationID, r.Timestamp, r.Lat, r.Lon,
		r.Temperature, r.Humidity, r.WindSpeed, r.WindDirection,
		r.Precipitation, r.Pressure,
	}
}
