package generator

import "cityflow/datagen/models"

// CityZones is the static zone reference table.
func CityZones() []models.Zone {
	return []models.Zone{
		{ZoneID: "ZONE_001", ZoneName: "Downtown", ZoneType: "commercial", LatMin: 40.7200, LatMax: 40.7400, LonMin: -74.0100, LonMax: -73.9900, Population: 25000},
		{ZoneID: "ZONE_002", ZoneName: "Financial District", ZoneType: "commercial", LatMin: 40.7000, LatMax: 40.7200, LonMin: -74.0200, LonMax: -74.0000, Population: 15000},
		{ZoneID: "ZONE_003", ZoneName: "Residential North", ZoneType: "residential", LatMin: 40.7600, LatMax: 40.8000, LonMin: -74.0000, LonMax: -73.9800, Population: 45000},
		{ZoneID: "ZONE_004", ZoneName: "Residential South", ZoneType: "residential", LatMin: 40.7000, LatMax: 40.7200, LonMin: -73.9800, LonMax: -73.9600, Population: 38000},
		{ZoneID: "ZONE_005", ZoneName: "Industrial Park", ZoneType: "industrial", LatMin: 40.7400, LatMax: 40.7600, LonMin: -74.0200, LonMax: -74.0000, Population: 5000},
		{ZoneID: "ZONE_006", ZoneName: "Tech Campus", ZoneType: "commercial", LatMin: 40.7600, LatMax: 40.7800, LonMin: -73.9800, LonMax: -73.9600, Population: 12000},
		{ZoneID: "ZONE_007", ZoneName: "University Area", ZoneType: "mixed", LatMin: 40.7200, LatMax: 40.7400, LonMin: -73.9600, LonMax: -73.9400, Population: 22000},
		{ZoneID: "ZONE_008", ZoneName: "Shopping District", ZoneType: "retail", LatMin: 40.7400, LatMax: 40.7600, LonMin: -73.9600, LonMax: -73.9400, Population: 8000},
	}
}
