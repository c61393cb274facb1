package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"komfovent_gateway/internal/models"

	"github.com/google/uuid"
)

const (
	insertEventSQL = `
		INSERT INTO device_events (id, occurred_at, type, description, meta)
		VALUES (?, ?, ?, ?, ?)
	`
	selectEventsSQL = `SELECT id, occurred_at, type, description, meta FROM device_events`

	sqliteTimestamp = "2006-01-02 15:04:05"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

// Append inserts a new event. Missing EventID and OccurredAt are filled in.
func (r *EventSQLite) Append(ctx context.Context, e models.DeviceEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var meta *string
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata of %s event: %w", e.Type, err)
		}
		s := string(b)
		meta = &s
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.Format(sqliteTimestamp),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		meta,
	)
	if err != nil {
		return fmt.Errorf("insert %s event: %w", e.Type, err)
	}
	return nil
}

// List returns events in [from, to] (inclusive, zero means unbounded),
// optionally of one type, newest first. limit <= 0 means no limit.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, typ string, limit int) ([]models.DeviceEvent, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimestamp))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimestamp))
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := selectEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at DESC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := make([]models.DeviceEvent, 0, 64)
	for rows.Next() {
		var (
			ev   models.DeviceEvent
			meta sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Description, &meta); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()

		if meta.Valid && meta.String != "" {
			var v any
			if err := json.Unmarshal([]byte(meta.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = meta.String
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}
