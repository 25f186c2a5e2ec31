package storage

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one row of the key-value table.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;type:varchar(64);primaryKey"`
	Value     string    `gorm:"column:entry_value;type:longtext;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// GormKV keeps the collections in a single SQL table (sqlite on device,
// mysql when configured).
type GormKV struct {
	DB *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{DB: db}
}

// Migrate creates the key-value table if needed.
func (s *GormKV) Migrate() error {
	return s.DB.AutoMigrate(&KVEntry{})
}

func (s *GormKV) Get(ctx context.Context, key string) (string, bool, error) {
	var entry KVEntry
	result := s.DB.WithContext(ctx).Where("entry_key = ?", key).Limit(1).Find(&entry)
	if result.Error != nil {
		return "", false, result.Error
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (s *GormKV) Set(ctx context.Context, key, value string) error {
	return upsertEntry(s.DB.WithContext(ctx), key, value)
}

func (s *GormKV) SetMany(ctx context.Context, entries map[string]string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range entries {
			if err := upsertEntry(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormKV) Remove(ctx context.Context, key string) error {
	return s.DB.WithContext(ctx).Where("entry_key = ?", key).Delete(&KVEntry{}).Error
}

func upsertEntry(db *gorm.DB, key, value string) error {
	entry := KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&entry).Error
}
