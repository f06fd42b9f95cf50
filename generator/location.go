package generator

import (
	"fmt"

	"cityflow/datagen/models"
)

func RandomLocation(r *Random, b models.BoundingBox) (lat, lon float64) {
	lat = r.Uniform(b.LatMin, b.LatMax)
	lon = r.Uniform(b.LonMin, b.LonMax)
	return lat, lon
}

// NewSensors builds count sensors named PREFIX_NNN (width digits, starting
// at 1). When categories is non-empty each sensor is tagged with one of them.
func NewSensors(r *Random, prefix string, width, count int, b models.BoundingBox, categories []string) []models.Sensor {
	sensors := make([]models.Sensor, 0, count)
	for i := 1; i <= count; i++ {
		s := models.Sensor{ID: fmt.Sprintf("%s_%0*d", prefix, width, i)}
		s.Lat, s.Lon = RandomLocation(r, b)
		if len(categories) > 0 {
			s.Category = r.Choice(categories)
		}
		sensors = append(sensors, s)
	}
	return sensors
}
