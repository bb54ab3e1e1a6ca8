package report

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/mikios34/choonpaan/entity"
)

func TestRosterWritesPDF(t *testing.T) {
	var buf bytes.Buffer
	records := []entity.ProfileRecord{
		{ID: "d1", Name: "Dawit", Email: "d@example.com", Status: entity.DriverPending},
		{ID: "d2", Name: "Zoë", Email: "z@example.com"},
	}
	if err := Roster(&buf, "Driver Report", records, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", buf.Bytes()[:8])
	}
}

func TestRosterPaginates(t *testing.T) {
	var records []entity.ProfileRecord
	for i := 0; i < 120; i++ {
		records = append(records, entity.ProfileRecord{ID: fmt.Sprint(i), Name: fmt.Sprintf("User %d", i), Email: fmt.Sprintf("u%d@example.com", i)})
	}
	var buf bytes.Buffer
	if err := Roster(&buf, "User Report", records, time.Now()); err != nil {
		t.Fatalf("Roster: %v", err)
	}
	// one "/Type /Page" per page plus the "/Type /Pages" tree root
	if n := bytes.Count(buf.Bytes(), []byte("/Type /Page")); n < 3 {
		t.Fatalf("expected several pages for %d records, found %d page markers", len(records), n)
	}
}

func TestRosterEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Roster(&buf, "User Report", nil, time.Now()); err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected output for empty roster")
	}
}
