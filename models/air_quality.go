package models

import "time"

type AirQualityReading struct {
	SensorID    string    `json:"sensor_id"`
	Timestamp   time.Time `json:"timestamp"`
	Lat         float64   `json:"location_lat"`
	Lon         float64   `json:"location_lon"`
	PM25        float64   `json:"pm25"`
	PM10        float64   `json:"pm10"`
	NO2         float64   `json:"no2"`
	CO          float64   `json:"co"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
}

var AirQualityColumns = []string{
	"sensor_id", "timestamp", "location_lat", "location_lon",
	"pm25", "pm10", "no2", "co", "temperature", "humidity",
}

func (r AirQualityReading) Values() []any {
	return []any{
		r.SensorID, r.Timestamp, r.Lat, r.Lon,
		r.PM25, r.PM10, r.NO2, r.CO, r.Temperature, r.Humidity,
	}
}
