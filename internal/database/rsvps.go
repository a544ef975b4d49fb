package database

import (
	"time"

	"github.com/google/uuid"
)

// UpsertRSVP records a user's response to an event. The rsvps table carries
// UNIQUE (user_id, event_id), so the write itself decides between insert and
// update: a second submission for the same pair lands on the conflict branch
// and only moves the status, keeping the original row id and created_at.
// Two concurrent submissions can therefore never produce duplicate rows.
func (db *DB) UpsertRSVP(userID, eventID, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(
		`INSERT INTO rsvps (id, user_id, event_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, event_id) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at`,
		uuid.NewString(), userID, eventID, status, now, now,
	)
	if err != nil {
		return storeErr("failed to upsert rsvp", err)
	}
	return nil
}

// GetRSVPForUser returns the user's RSVP for an event, or nil when the user
// has not responded yet.
func (db *DB) GetRSVPForUser(userID, eventID string) (*RSVP, error) {
	rsvp := &RSVP{}
	err := db.QueryRow(
		`SELECT r.id, r.user_id, r.event_id, r.status, r.created_at, r.updated_at, u.name, u.email
		 FROM rsvps r
		 JOIN users u ON r.user_id = u.id
		 WHERE r.user_id = $1 AND r.event_id = $2`,
		userID, eventID,
	).Scan(&rsvp.ID, &rsvp.UserID, &rsvp.EventID, &rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt,
		&rsvp.UserName, &rsvp.UserEmail)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("failed to get rsvp", err)
	}
	return rsvp, nil
}

// ListRSVPsForEvent returns all RSVPs for an event with responder name and
// email joined in, newest response first.
func (db *DB) ListRSVPsForEvent(eventID string) ([]*RSVP, error) {
	rows, err := db.Query(
		`SELECT r.id, r.user_id, r.event_id, r.status, r.created_at, r.updated_at, u.name, u.email
		 FROM rsvps r
		 JOIN users u ON r.user_id = u.id
		 WHERE r.event_id = $1
		 ORDER BY r.updated_at DESC`,
		eventID,
	)
	if err != nil {
		return nil, storeErr("failed to list rsvps", err)
	}
	defer rows.Close()

	var rsvps []*RSVP
	for rows.Next() {
		rsvp := &RSVP{}
		err := rows.Scan(&rsvp.ID, &rsvp.UserID, &rsvp.EventID, &rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt,
			&rsvp.UserName, &rsvp.UserEmail)
		if err != nil {
			return nil, storeErr("failed to scan rsvp", err)
		}
		rsvps = append(rsvps, rsvp)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to list rsvps", err)
	}

	return rsvps, nil
}
