package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
)

// ProfileRecord is one key of one profile partition.
type ProfileRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID string         `gorm:"column:profile_id;not null;index:idx_profile_key,unique,priority:1" json:"profile_id"`
	Key       string         `gorm:"column:key;not null;index:idx_profile_key,unique,priority:2" json:"key"`
	Value     datatypes.JSON `gorm:"column:value;not null" json:"value"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (ProfileRecord) TableName() string { return "profile_record" }

// GormAdapter persists profile partitions in a relational KV table via
// GORM; both the sqlite and postgres drivers satisfy it.
type GormAdapter struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormAdapter(db *gorm.DB, baseLog *logger.Logger) (*GormAdapter, error) {
	adapterLog := baseLog.With("adapter", "GormAdapter")
	if err := db.AutoMigrate(&ProfileRecord{}); err != nil {
		return nil, err
	}
	return &GormAdapter{db: db, log: adapterLog}, nil
}

func (a *GormAdapter) Get(ctx context.Context, profileID, key string) (json.RawMessage, bool, error) {
	var rec ProfileRecord
	err := a.db.WithContext(ctx).
		Where("profile_id = ? AND key = ?", profileID, key).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(rec.Value), true, nil
}

func (a *GormAdapter) Set(ctx context.Context, profileID, key string, value json.RawMessage) error {
	rec := ProfileRecord{
		ID:        uuid.New(),
		ProfileID: profileID,
		Key:       key,
		Value:     datatypes.JSON(value),
	}
	return a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

func (a *GormAdapter) Delete(ctx context.Context, profileID, key string) error {
	return a.db.WithContext(ctx).
		Where("profile_id = ? AND key = ?", profileID, key).
		Delete(&ProfileRecord{}).Error
}

func (a *GormAdapter) Exists(ctx context.Context, profileID, key string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&ProfileRecord{}).
		Where("profile_id = ? AND key = ?", profileID, key).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *GormAdapter) Clear(ctx context.Context, profileID string) error {
	return a.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&ProfileRecord{}).Error
}
