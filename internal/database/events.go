package database

import (
	"time"

	"github.com/google/uuid"
)

// CreateEvent inserts a new event. Events are immutable after creation;
// there is no edit or delete path.
func (db *DB) CreateEvent(title, description string, date time.Time, city, createdBy string) (*Event, error) {
	event := &Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Date:        date.UTC(),
		City:        city,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO events (id, title, description, date, city, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.Title, event.Description, event.Date, event.City, event.CreatedBy, event.CreatedAt,
	)
	if err != nil {
		return nil, storeErr("failed to create event", err)
	}

	return event, nil
}

// GetEventByID returns one event with its creator joined in, or nil when
// no such event exists.
func (db *DB) GetEventByID(id string) (*Event, error) {
	event := &Event{Creator: &User{}}
	err := db.QueryRow(
		`SELECT e.id, e.title, e.description, e.date, e.city, e.created_by, e.created_at,
		        u.id, u.name, u.email, u.created_at
		 FROM events e
		 JOIN users u ON e.created_by = u.id
		 WHERE e.id = $1`,
		id,
	).Scan(
		&event.ID, &event.Title, &event.Description, &event.Date, &event.City, &event.CreatedBy, &event.CreatedAt,
		&event.Creator.ID, &event.Creator.Name, &event.Creator.Email, &event.Creator.CreatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("failed to get event", err)
	}
	return event, nil
}

// ListUpcomingEvents returns every event on or after the given instant,
// ascending by date, with creator name and email joined in.
func (db *DB) ListUpcomingEvents(now time.Time) ([]*Event, error) {
	rows, err := db.Query(
		`SELECT e.id, e.title, e.description, e.date, e.city, e.created_by, e.created_at,
		        u.id, u.name, u.email, u.created_at
		 FROM events e
		 JOIN users u ON e.created_by = u.id
		 WHERE e.date >= $1
		 ORDER BY e.date ASC`,
		now.UTC(),
	)
	if err != nil {
		return nil, storeErr("failed to list events", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event := &Event{Creator: &User{}}
		err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.Date, &event.City, &event.CreatedBy, &event.CreatedAt,
			&event.Creator.ID, &event.Creator.Name, &event.Creator.Email, &event.Creator.CreatedAt,
		)
		if err != nil {
			return nil, storeErr("failed to scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to list events", err)
	}

	return events, nil
}
