package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
)

const (
	// EventLoanCreated emitted on borrow
	EventLoanCreated = "loan-created"
	// EventLoanRepaid emitted on repay
	EventLoanRepaid = "loan-repaid"
	// EventCollateralAdded emitted on add-collateral
	EventCollateralAdded = "collateral-added"
	// EventLoanLiquidated emitted on liquidate
	EventLoanLiquidated = "loan-liquidated"
	// EventPriceUpdated emitted when the oracle price is ingested
	EventPriceUpdated = "price-updated"
)

// Event outbox row, appended inside the same transaction as the ledger
// mutation it describes and flushed to observers only after commit.
type Event struct {
	ID          uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID     string         `sql:"size:36;unique_index:idx_events_trace" json:"trace_id"`
	Event       string         `sql:"size:32;index:idx_events_name" json:"event"`
	LoanID      uint64         `sql:"default:0" json:"loan_id"`
	Payload     types.JSONText `sql:"type:varchar(2048)" json:"payload"`
	PublishedAt sql.NullTime   `json:"published_at,omitempty"`
	CreatedAt   time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// EventPayload event payload fields, keyed the way external listeners
// consume them
type EventPayload map[string]interface{}

// Put put data
func (p EventPayload) Put(key string, value interface{}) {
	p[key] = value
}

// Format format as json
func (p EventPayload) Format() []byte {
	data, err := json.Marshal(p)
	if err != nil {
		return []byte("{}")
	}
	return data
}

// BuildEvent build an outbox event with its payload
func BuildEvent(traceID, name string, loanID uint64, payload EventPayload) *Event {
	return &Event{
		TraceID: traceID,
		Event:   name,
		LoanID:  loanID,
		Payload: payload.Format(),
	}
}

// IEventStore event outbox store interface
type IEventStore interface {
	Create(ctx context.Context, tx *db.DB, event *Event) error
	ListUnpublished(ctx context.Context, limit int) ([]*Event, error)
	MarkPublished(ctx context.Context, event *Event) error
}
