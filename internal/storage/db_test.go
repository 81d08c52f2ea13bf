package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNewCreatesDirectoryAndSchema(t *testing.T) {
	dir := t.TempDir()
	db, err := New(filepath.Join(dir, "nested", "assistente.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	counts, err := db.TableCounts(context.Background())
	if err != nil {
		t.Fatalf("TableCounts: %v", err)
	}
	if len(counts) != 3 {
		t.Errorf("expected 3 tables, got %v", counts)
	}
}

func TestCreateSnapshot(t *testing.T) {
	dir := t.TempDir()
	db, err := New(filepath.Join(dir, "assistente.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	if _, err := db.SaveAppointment(ctx, &Appointment{
		UserID: 1, Title: "Call pai", Date: "04/03/2024", Time: "10:00", Category: "schedule",
	}); err != nil {
		t.Fatalf("SaveAppointment: %v", err)
	}

	snapPath := filepath.Join(dir, "snapshot.db")
	if err := db.CreateSnapshot(ctx, snapPath); err != nil {
		t.Fatalf("CreateSnapshot: %v", err)
	}

	// The snapshot is a standalone database with the same contents.
	snap, err := New(snapPath)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer snap.Close()

	appointments, err := snap.AllAppointments(ctx, 1)
	if err != nil {
		t.Fatalf("AllAppointments: %v", err)
	}
	if len(appointments) != 1 || appointments[0].Title != "Call pai" {
		t.Errorf("snapshot contents = %+v", appointments)
	}

	// A second snapshot overwrites the first.
	if err := db.CreateSnapshot(ctx, snapPath); err != nil {
		t.Fatalf("second CreateSnapshot: %v", err)
	}
}
