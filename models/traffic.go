package models

import "time"

type CongestionLevel string

const (
	CongestionLow    CongestionLevel = "low"
	CongestionMedium CongestionLevel = "medium"
	CongestionHigh   CongestionLevel = "high"
)

type TrafficReading struct {
	SensorID        string          `json:"sensor_id"`
	Timestamp       time.Time       `json:"timestamp"`
	Lat             float64         `json:"location_lat"`
	Lon             float64         `json:"location_lon"`
	VehicleCount    int             `json:"vehicle_count"`
	AvgSpeed        float64         `json:"avg_speed"`
	CongestionLevel CongestionLevel `json:"congestion_level"`
	RoadType        string          `json:"road_type"`
}

var TrafficColumns = []string{
	"sensor_id", "timestamp", "location_lat", "location_lon",
	"vehicle_count", "avg_speed", "congestion_level", "road_type",
}

func (r TrafficReading) Values() []any {
	return []any{
		r.SensorID, r.Timestamp, r.Lat, r.Lon,
		r.VehicleCount, r.AvgSpeed, string(r.CongestionLevel), r.RoadType,
	}
}
