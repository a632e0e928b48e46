package scope

import "gorm.io/gorm"

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// PreloadArrestParties loads the citizen and officer of each arrest.
func PreloadArrestParties(db *gorm.DB) *gorm.DB {
	return db.Preload("Citizen").Preload("Officer")
}

func PreloadCitizen(db *gorm.DB) *gorm.DB {
	return db.Preload("Citizen")
}
