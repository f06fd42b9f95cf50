package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestColumnsMatchValues(t *testing.T) {
	ts := time.Date(2024, time.January, 22, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		columns []string
		row     Row
	}{
		{TrafficDataset, TrafficColumns, TrafficReading{Timestamp: ts}},
		{AirQualityDataset, AirQualityColumns, AirQualityReading{Timestamp: ts}},
		{WeatherDataset, WeatherColumns, WeatherReading{Timestamp: ts}},
		{EnergyDataset, EnergyColumns, EnergyReading{Timestamp: ts}},
		{ZonesDataset, ZoneColumns, Zone{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.row.Values()); got != len(tt.columns) {
				t.Fatalf("Values() has %d entries, columns %d", got, len(tt.columns))
			}

			// JSON field names follow the column names.
			raw, err := json.Marshal(tt.row)
			if err != nil {
				t.Fatal(err)
			}
			var obj map[string]any
			if err := json.Unmarshal(raw, &obj); err != nil {
				t.Fatal(err)
			}
			for _, col := range tt.columns {
				if _, ok := obj[col]; !ok {
					t.Errorf("json is missing %q", col)
				}
			}
		})
	}
}

func TestTrafficValuesOrder(t *testing.T) {
	r := TrafficReading{SensorID: "TRAFFIC_001", VehicleCount: 12, CongestionLevel: CongestionHigh, RoadType: "highway"}
	v := r.Values()
	if v[0] != "TRAFFIC_001" || v[4] != 12 || v[6] != "high" || v[7] != "highway" {
		t.Errorf("Values() = %v", v)
	}
}

func TestRows(t *testing.T) {
	rows := Rows([]Zone{{ZoneID: "ZONE_001"}, {ZoneID: "ZONE_002"}})
	if len(rows) != 2 {
		t.Fatalf("len = %d", len(rows))
	}
	if z, ok := rows[1].(Zone); !ok || z.ZoneID != "ZONE_002" {
		t.Errorf("rows[1] = %#v", rows[1])
	}
}

func TestBoundingBoxContains(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{40.75, -73.95, true},
		{40.70, -74.02, true},
		{40.80, -73.90, true},
		{40.69, -73.95, false},
		{40.75, -73.89, false},
	}
	for _, tt := range tests {
		if got := CityBounds.Contains(tt.lat, tt.lon); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
		}
	}
}

func TestZone(t *testing.T) {
	z := Zone{ZoneID: "ZONE_001", LatMin: 40.72, LatMax: 40.74, LonMin: -74.01, LonMax: -73.99}
	if z.TableName() != "city_zones" {
		t.Errorf("TableName() = %q", z.TableName())
	}
	if !z.Bounds().Contains(40.73, -74.0) {
		t.Error("zone bounds should contain its centre")
	}
}
