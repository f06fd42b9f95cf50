package models

type Zone struct {
	ZoneID     string  `gorm:"column:zone_id;primaryKey" json:"zone_id"`
	ZoneName   string  `gorm:"column:zone_name" json:"zone_name"`
	ZoneType   string  `gorm:"column:zone_type" json:"zone_type"`
	LatMin     float64 `gorm:"column:lat_min" json:"lat_min"`
	LatMax     float64 `gorm:"column:lat_max" json:"lat_max"`
	LonMin     float64 `gorm:"column:lon_min" json:"lon_min"`
	LonMax     float64 `gorm:"column:lon_max" json:"lon_max"`
	Population int     `gorm:"column:population" json:"population"`
}

func (Zone) TableName() string { return ZonesDataset }

var ZoneColumns = []string{
	"zone_id", "zone_name", "zone_type",
	"lat_min", "lat_max", "lon_min", "lon_max", "population",
}

func (z Zone) Values() []any {
	return []any{
		z.ZoneID, z.ZoneName, z.ZoneType,
		z.LatMin, z.LatMax, z.LonMin, z.LonMax, z.Population,
	}
}

func (z Zone) Bounds() BoundingBox {
	return BoundingBox{LatMin: z.LatMin, LatMax: z.LatMax, LonMin: z.LonMin, LonMax: z.LonMax}
}
