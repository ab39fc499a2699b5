package models

// RegionAssignmentModel is the persistence model for the org hierarchy:
// one row per configured store, carrying the manager it reports to.
// Position preserves the display order within a region.
type RegionAssignmentModel struct {
	BaseModel
	Manager        string `gorm:"type:varchar(100);not null;index"`
	StoreShortName string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Position       int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (RegionAssignmentModel) TableName() string {
	return "region_assignments"
}
