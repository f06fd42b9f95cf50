package generator

import (
	"math"
	"time"

	"cityflow/datagen/models"
)

const (
	baseTemperature     = 20.0
	precipitationChance = 0.1
)

// DayTemperature is the city-wide temperature at ts before per-station noise.
func (g *Generator) DayTemperature(ts time.Time) float64 {
	hourFactor := math.Sin(float64(ts.Hour()-6)*math.Pi/12) * 0.3
	return baseTemperature + g.rnd.Normal(0, 3) + hourFactor*5
}

func (g *Generator) Weather() []models.WeatherReading {
	stations := NewSensors(g.rnd, "WEATHER", 3, WeatherStationCount, g.bounds, nil)
	out := make([]models.WeatherReading, 0, g.window.Count(WeatherInterval)*len(stations))
	for ts := range g.window.Timestamps(WeatherInterval) {
		dayTemp := g.DayTemperature(ts)
		for _, s := range stations {
			out = append(out, models.WeatherReading{
				StationID:     s.ID,
				Timestamp:     ts,
				Lat:           s.Lat,
				Lon:           s.Lon,
				Temperature:   dayTemp + g.rnd.Normal(0, 1),
				Humidity:      clamp(g.rnd.Normal(60, 15), 20, 100),
				WindSpeed:     math.Max(0, g.rnd.Exponential(8)),
				WindDirection: g.rnd.Uniform(0, 360),
				Precipitation: g.precipitation(),
				Pressure:      g.rnd.Normal(1013.25, 10),
			})
		}
	}
	return out
}

func (g *Generator) precipitation() float64 {
	if g.rnd.Float64() < precipitationChance {
		return math.Max(0, g.rnd.Exponential(0.5))
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
