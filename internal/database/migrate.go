package database

import "gorm.io/gorm"

// AutoMigrate applies the schema for every registered model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(PersistentModels()...)
}
