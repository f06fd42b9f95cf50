package models

import "time"

type EnergyReading struct {
	MeterID          string    `json:"meter_id"`
	Timestamp        time.Time `json:"timestamp"`
	BuildingType     string    `json:"building_type"`
	Lat              float64   `json:"location_lat"`
	Lon              float64   `json:"location_lon"`
	PowerConsumption float64   `json:"power_consumption"`
	Voltage          float64   `json:"voltage"`
	Current          float64   `json:"current"`
	PowerFactor      float64   `json:"power_factor"`
}

var EnergyColumns = []string{
	"meter_id", "timestamp", "building_type", "location_lat", "location_lon",
	"power_consumption", "voltage", "current", "power_factor",
}

func (r EnergyReading) Values() []any {
	return []any{
		r.MeterID, r.Timestamp, r.BuildingType, r.Lat, r.Lon,
		r.PowerConsumption, r.Voltage, r.Current, r.PowerFactor,
	}
}
