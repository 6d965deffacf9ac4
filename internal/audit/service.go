package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/vds-erp/vds-erp/internal/platform/db"
)

const defaultLimit = 100

// Entry is an audit trail record as returned by the history endpoint.
type Entry struct {
	ID         int64          `json:"id"`
	ActorID    string         `json:"actorId"`
	Action     string         `json:"action"`
	Entity     string         `json:"entity"`
	EntityID   string         `json:"entityId"`
	Meta       map[string]any `json:"meta"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// ListFilter narrows the audit trail.
type ListFilter struct {
	Entity string
	Limit  int
}

// Service reads the audit trail back out of audit_logs.
type Service struct {
	pool db.Querier
}

// NewService builds a Service instance.
func NewService(pool db.Querier) *Service {
	return &Service{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// List returns audit entries newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = defaultLimit
	}

	builder := psql.Select("id", "actor_id", "action", "entity", "entity_id", "meta", "occurred_at").
		From("audit_logs").
		OrderBy("occurred_at DESC", "id DESC").
		Limit(uint64(limit))
	if filter.Entity != "" {
		builder = builder.Where(sq.Eq{"entity": filter.Entity})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("audit: build list query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: list: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var meta []byte
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &meta, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("audit: scan: %w", err)
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &e.Meta); err != nil {
				return nil, fmt.Errorf("audit: decode meta: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
