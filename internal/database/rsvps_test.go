package database

import (
	"testing"
	"time"
)

func createTestEvent(t *testing.T, db *DB, creator *User, title string) *Event {
	t.Helper()
	event, err := db.CreateEvent(title, "", time.Now().UTC().Add(24*time.Hour), "Test City", creator.ID)
	if err != nil {
		t.Fatalf("Failed to create test event %s: %v", title, err)
	}
	return event
}

func TestUpsertRSVPIsIdempotentPerPair(t *testing.T) {
	db := setupTestDB(t)
	user := createTestProfile(t, db, "u1", "Hana", "hana@example.com")
	creator := createTestProfile(t, db, "u2", "Igor", "igor@example.com")
	event := createTestEvent(t, db, creator, "Upsert Test")

	if err := db.UpsertRSVP(user.ID, event.ID, RSVPStatusYes); err != nil {
		t.Fatalf("UpsertRSVP() error = %v", err)
	}
	first, err := db.GetRSVPForUser(user.ID, event.ID)
	if err != nil {
		t.Fatalf("GetRSVPForUser() error = %v", err)
	}
	if first == nil || first.Status != RSVPStatusYes {
		t.Fatalf("GetRSVPForUser() = %+v, want status Yes", first)
	}

	// Any sequence of further submissions for the same pair must land on the
	// same row: id and created_at stay, status follows the latest value.
	for _, status := range []string{RSVPStatusMaybe, RSVPStatusNo, RSVPStatusNo} {
		if err := db.UpsertRSVP(user.ID, event.ID, status); err != nil {
			t.Fatalf("UpsertRSVP(%s) error = %v", status, err)
		}
	}

	updated, err := db.GetRSVPForUser(user.ID, event.ID)
	if err != nil {
		t.Fatalf("GetRSVPForUser() after updates error = %v", err)
	}
	if updated.Status != RSVPStatusNo {
		t.Errorf("status = %s, want the most recently submitted value No", updated.Status)
	}
	if updated.ID != first.ID {
		t.Errorf("row id changed on update: %s -> %s", first.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed on update: %v -> %v", first.CreatedAt, updated.CreatedAt)
	}

	all, err := db.ListRSVPsForEvent(event.ID)
	if err != nil {
		t.Fatalf("ListRSVPsForEvent() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("row count for (user, event) = %d, want exactly 1", len(all))
	}
}

func TestGetRSVPForUserAbsent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestProfile(t, db, "u3", "Jana", "jana@example.com")
	event := createTestEvent(t, db, user, "No Response Yet")

	rsvp, err := db.GetRSVPForUser(user.ID, event.ID)
	if err != nil {
		t.Fatalf("GetRSVPForUser() error = %v", err)
	}
	if rsvp != nil {
		t.Errorf("GetRSVPForUser() with no response = %+v, want nil", rsvp)
	}
}

func TestListRSVPsForEventJoinsUsers(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestProfile(t, db, "u4", "Karl", "karl@example.com")
	event := createTestEvent(t, db, creator, "Join Test")

	guests := []struct {
		id, name, email, status string
	}{
		{"g1", "Lena", "lena@example.com", RSVPStatusYes},
		{"g2", "Milo", "milo@example.com", RSVPStatusMaybe},
	}
	for _, g := range guests {
		createTestProfile(t, db, g.id, g.name, g.email)
		if err := db.UpsertRSVP(g.id, event.ID, g.status); err != nil {
			t.Fatalf("UpsertRSVP(%s) error = %v", g.id, err)
		}
	}

	rsvps, err := db.ListRSVPsForEvent(event.ID)
	if err != nil {
		t.Fatalf("ListRSVPsForEvent() error = %v", err)
	}
	if len(rsvps) != 2 {
		t.Fatalf("ListRSVPsForEvent() count = %d, want 2", len(rsvps))
	}

	byUser := map[string]*RSVP{}
	for _, r := range rsvps {
		byUser[r.UserID] = r
	}
	for _, g := range guests {
		got, ok := byUser[g.id]
		if !ok {
			t.Errorf("missing rsvp for %s", g.id)
			continue
		}
		if got.UserName != g.name || got.UserEmail != g.email {
			t.Errorf("rsvp for %s: user = %q/%q, want %q/%q", g.id, got.UserName, got.UserEmail, g.name, g.email)
		}
		if got.Status != g.status {
			t.Errorf("rsvp for %s: status = %s, want %s", g.id, got.Status, g.status)
		}
	}
}

func TestCountRSVPs(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     RSVPCounts
	}{
		{
			name:     "empty set is zero-filled",
			statuses: nil,
			want:     RSVPCounts{},
		},
		{
			name:     "mixed statuses",
			statuses: []string{RSVPStatusYes, RSVPStatusYes, RSVPStatusMaybe, RSVPStatusNo},
			want:     RSVPCounts{Yes: 2, No: 1, Maybe: 1},
		},
		{
			name:     "single bucket",
			statuses: []string{RSVPStatusMaybe, RSVPStatusMaybe},
			want:     RSVPCounts{Maybe: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rsvps []*RSVP
			for _, s := range tt.statuses {
				rsvps = append(rsvps, &RSVP{Status: s})
			}

			got := CountRSVPs(rsvps)
			if got != tt.want {
				t.Errorf("CountRSVPs() = %+v, want %+v", got, tt.want)
			}
			if got.Total() != len(rsvps) {
				t.Errorf("Total() = %d, want %d (counts must sum to the row count)", got.Total(), len(rsvps))
			}
		})
	}
}
