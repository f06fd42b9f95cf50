package generator

import (
	"time"

	"cityflow/datagen/models"
)

const (
	TrafficSensorCount  = 50
	AirQualityMonitors  = 20
	WeatherStationCount = 10
	EnergyMeterCount    = 200
	TrafficInterval     = 5 * time.Minute
	AirQualityInterval  = 15 * time.Minute
	WeatherInterval     = 30 * time.Minute
	EnergyInterval      = 10 * time.Minute
	DefaultDays         = 7
)

// Generator produces every dataset over one shared window and bounding box.
type Generator struct {
	rnd    *Random
	window Window
	bounds models.BoundingBox
}

func New(rnd *Random, window Window, bounds models.BoundingBox) *Generator {
	return &Generator{rnd: rnd, window: window, bounds: bounds}
}

func (g *Generator) Window() Window {
	return g.window
}

func (g *Generator) Seed() uint64 {
	return g.rnd.Seed
}
