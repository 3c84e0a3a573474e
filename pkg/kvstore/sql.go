package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/friendsofall-backend/pkg/db"
	"github.com/angelmondragon/friendsofall-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLMedium stores documents in the kv_entries table through GORM.
type SQLMedium struct {
	client *db.Client
	now    func() time.Time
}

func NewSQLMedium(client *db.Client) *SQLMedium {
	return &SQLMedium{client: client, now: time.Now}
}

func (s *SQLMedium) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.KVEntry
	err := s.client.DB().WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select kv entry %s: %w", key, err)
	}
	return []byte(entry.Value), true, nil
}

func (s *SQLMedium) Write(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{Key: key, Value: string(value), UpdatedAt: s.now().UTC()}
	err := s.client.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert kv entry %s: %w", key, err)
	}
	return nil
}

func (s *SQLMedium) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
