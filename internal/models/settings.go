package models

// Settings is a single-row table holding user preferences. CycleStartDay
// anchors the pay cycle; 1 means plain calendar months.
type Settings struct {
	Base
	CycleStartDay int `gorm:"not null;default:1" json:"cycle_start_day"`
}
