package entity

// LevelRule maps a cumulative point range to a level number. The table is
// externally owned and rarely changes; the engine only reads it.
type LevelRule struct {
	Level     int `gorm:"primaryKey" json:"level"`
	MinPoints int `gorm:"not null" json:"min_points"`
	MaxPoints int `gorm:"not null" json:"max_points"`
}

func (LevelRule) TableName() string {
	return "level_rules"
}
