package event

import (
	"context"
	"database/sql"
	"time"

	"sblend/core"

	"github.com/fox-one/pkg/store/db"
)

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.IEventStore {
	return &eventStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})
		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_events_trace_id", "trace_id").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_events_published_at", "published_at").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *eventStore) Create(ctx context.Context, tx *db.DB, event *core.Event) error {
	return tx.Update().Where("trace_id = ?", event.TraceID).FirstOrCreate(event).Error
}

func (s *eventStore) ListUnpublished(ctx context.Context, limit int) ([]*core.Event, error) {
	var events []*core.Event
	if err := s.db.View().Where("published_at IS NULL").Order("id").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (s *eventStore) MarkPublished(ctx context.Context, event *core.Event) error {
	event.PublishedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return s.db.Update().Model(core.Event{}).
		Where("id = ?", event.ID).
		Update("published_at", event.PublishedAt).Error
}
