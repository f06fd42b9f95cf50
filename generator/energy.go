package generator

import (
	"cityflow/datagen/models"
)

var BuildingTypes = []string{"residential", "commercial", "industrial", "office", "retail"}

// BaseConsumption is the nominal draw in kW per building type.
var BaseConsumption = map[string]float64{
	"residential": 3.0,
	"commercial":  15.0,
	"industrial":  50.0,
	"office":      20.0,
	"retail":      25.0,
}

// ConsumptionFactor scales the base draw by time of day. Anything that is not
// a business or industrial building follows the residential evening peak.
func ConsumptionFactor(buildingType string, hour int, weekend bool) float64 {
	switch buildingType {
	case "commercial", "office", "retail":
		if IsBusinessHours(hour) && !weekend {
			return 1.5
		}
		return 0.3
	case "industrial":
		return 1.0
	default:
		if hour >= 18 && hour <= 22 {
			return 1.2
		}
		return 0.8
	}
}

func (g *Generator) Energy() []models.EnergyReading {
	meters := NewSensors(g.rnd, "ENERGY", 4, EnergyMeterCount, g.bounds, BuildingTypes)
	out := make([]models.EnergyReading, 0, g.window.Count(EnergyInterval)*len(meters))
	for ts := range g.window.Timestamps(EnergyInterval) {
		hour, weekend := ts.Hour(), IsWeekend(ts)
		for _, m := range meters {
			factor := ConsumptionFactor(m.Category, hour, weekend)
			power := BaseConsumption[m.Category] * factor * g.rnd.Uniform(0.7, 1.3)
			voltage := g.rnd.Normal(240, 5)
			out = append(out, models.EnergyReading{
				MeterID:          m.ID,
				Timestamp:        ts,
				BuildingType:     m.Category,
				Lat:              m.Lat,
				Lon:              m.Lon,
				PowerConsumption: power,
				Voltage:          voltage,
				Current:          power / voltage * 1000,
				PowerFactor:      g.rnd.Uniform(0.85, 0.95),
			})
		}
	}
	return out
}
