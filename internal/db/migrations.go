package db

import (
	"log"

	"gorm.io/gorm"
)

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Scrap{}); err != nil {
		return err
	}

	return backfillDeletedUnix(db)
}

// backfillDeletedUnix stamps the dedup token on rows soft-deleted before the
// idx_user_page_active index existed, so they cannot collide with each other.
func backfillDeletedUnix(db *gorm.DB) error {
	result := db.Model(&Scrap{}).
		Where("deleted_at IS NOT NULL AND deleted_unix = 0").
		Update("deleted_unix", gorm.Expr("UNIX_TIMESTAMP(deleted_at) * 1000000000 + id"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Backfilled deletion token on %d soft-deleted scraps", result.RowsAffected)
	}

	return nil
}
