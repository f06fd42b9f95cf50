package models

import "time"

// Dataset names double as output file stems and export table names.
const (
	TrafficDataset    = "traffic_sensors"
	AirQualityDataset = "air_quality"
	WeatherDataset    = "weather_data"
	EnergyDataset     = "energy_meters"
	ZonesDataset      = "city_zones"
)

// TimestampLayout is used wherever a reading time is rendered as text.
const TimestampLayout = "2006-01-02T15:04:05.999999Z07:00"

type BoundingBox struct {
	LatMin float64 `toml:"lat-min"`
	LatMax float64 `toml:"lat-max"`
	LonMin float64 `toml:"lon-min"`
	LonMax float64 `toml:"lon-max"`
}

// CityBounds is the rectangle every synthetic sensor is placed in.
var CityBounds = BoundingBox{
	LatMin: 40.7000,
	LatMax: 40.8000,
	LonMin: -74.0200,
	LonMax: -73.9000,
}

func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}

type Sensor struct {
	ID       string
	Lat      float64
	Lon      float64
	Category string
}

// Row is a generated record laid out in the column order of its dataset.
type Row interface {
	Values() []any
}

func Rows[T Row](in []T) []Row {
	out := make([]Row, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}

// DatasetInfo describes one written dataset file.
type DatasetInfo struct {
	RunID       string    `json:"run_id,omitempty"`
	Name        string    `json:"name"`
	File        string    `json:"file"`
	Format      string    `json:"format"`
	Records     int       `json:"records"`
	Bytes       int64     `json:"bytes"`
	GeneratedAt time.Time `json:"generated_at"`
}
