package generator

import (
	"math"

	"cityflow/datagen/models"
)

// PollutionFactor scales pollutant means during rush hour, weekends included.
func PollutionFactor(hour int) float64 {
	if IsRushHour(hour) {
		return 1.3
	}
	return 1.0
}

func (g *Generator) AirQuality() []models.AirQualityReading {
	monitors := NewSensors(g.rnd, "AQ", 3, AirQualityMonitors, g.bounds, nil)
	out := make([]models.AirQualityReading, 0, g.window.Count(AirQualityInterval)*len(monitors))
	for ts := range g.window.Timestamps(AirQualityInterval) {
		f := PollutionFactor(ts.Hour())
		for _, m := range monitors {
			out = append(out, models.AirQualityReading{
				SensorID:    m.ID,
				Timestamp:   ts,
				Lat:         m.Lat,
				Lon:         m.Lon,
				PM25:        math.Max(0, g.rnd.Normal(25*f, 8)),
				PM10:        math.Max(0, g.rnd.Normal(40*f, 12)),
				NO2:         math.Max(0, g.rnd.Normal(30*f, 10)),
				CO:          math.Max(0, g.rnd.Normal(1.2*f, 0.4)),
				Temperature: g.rnd.Normal(20, 8),
				// Not clamped: the range already sits inside [30, 80).
				Humidity: g.rnd.Uniform(30, 80),
			})
		}
	}
	return out
}
