package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	// Referenced tables migrate before the tables carrying the constraints.
	return db.AutoMigrate(
		&Company{},
		&User{},
		&Area{},
		&Game{},
		&AreaConfig{},
		&ExtractionSeries{},
		&Ticket{},
		&AuditLog{},
	)
}
