package generator

import (
	"math"
	"time"

	"cityflow/datagen/models"
)

var RoadTypes = []string{"highway", "arterial", "residential", "commercial"}

// BaseVehicleCount is the off-peak mean vehicle count per 5 minutes.
func BaseVehicleCount(roadType string) int {
	if roadType == "highway" {
		return 30
	}
	return 15
}

// Congestion classifies a raw (unclamped) vehicle count against the road's
// base count. Peak readings are never "low"; off-peak readings never "high".
func Congestion(count, base int, peak bool) models.CongestionLevel {
	c, b := float64(count), float64(base)
	if peak {
		if c > 1.5*b {
			return models.CongestionHigh
		}
		return models.CongestionMedium
	}
	if c < 0.7*b {
		return models.CongestionLow
	}
	return models.CongestionMedium
}

func (g *Generator) Traffic() []models.TrafficReading {
	sensors := NewSensors(g.rnd, "TRAFFIC", 3, TrafficSensorCount, g.bounds, RoadTypes)
	out := make([]models.TrafficReading, 0, g.window.Count(TrafficInterval)*len(sensors))
	for ts := range g.window.Timestamps(TrafficInterval) {
		peak := IsRushHour(ts.Hour()) && !IsWeekend(ts)
		for _, s := range sensors {
			out = append(out, g.trafficReading(ts, s, peak))
		}
	}
	return out
}

func (g *Generator) trafficReading(ts time.Time, s models.Sensor, peak bool) models.TrafficReading {
	base := BaseVehicleCount(s.Category)
	b := float64(base)

	var count int
	var speed float64
	if peak {
		count = int(g.rnd.Normal(2*b, 0.3*b))
		speed = math.Max(10, g.rnd.Normal(25, 10))
	} else {
		count = int(g.rnd.Normal(b, 0.4*b))
		speed = g.rnd.Normal(50, 15)
	}

	return models.TrafficReading{
		SensorID:        s.ID,
		Timestamp:       ts,
		Lat:             s.Lat,
		Lon:             s.Lon,
		VehicleCount:    max(0, count),
		AvgSpeed:        math.Max(5, speed),
		CongestionLevel: Congestion(count, base, peak),
		RoadType:        s.Category,
	}
}
