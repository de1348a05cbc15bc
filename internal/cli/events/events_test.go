package events

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/burnoutguard/internal/cli"
	"github.com/julianstephens/burnoutguard/internal/engine"
	"github.com/julianstephens/burnoutguard/internal/storage"
	"github.com/julianstephens/burnoutguard/internal/storage/sqlite"
)

var testNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:  store,
		Engine: engine.New(engine.WithClock(func() time.Time { return testNow })),
		Out:    out,
	}, out
}

func TestEventAddCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	cmd := &EventAddCmd{
		Summary: "Midterm Exam",
		Start:   "2025-03-11T09:00:00-05:00",
		End:     "2025-03-11T11:00:00-05:00",
		ID:      "e1",
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("event add failed: %v", err)
	}

	got, err := ctx.Store.GetEvent("e1")
	if err != nil {
		t.Fatalf("GetEvent() failed: %v", err)
	}
	if want := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC); !got.Start.Equal(want) {
		t.Errorf("Start = %v, want canonical %v", got.Start, want)
	}
	if !strings.Contains(out.String(), `Added event "Midterm Exam" (e1)`) {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestEventAddCmd_GeneratesID(t *testing.T) {
	ctx, _ := setupTestContext(t)

	cmd := &EventAddCmd{Summary: "Yoga", Start: "2025-03-11T18:00", End: "2025-03-11T19:00"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("event add failed: %v", err)
	}
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		t.Fatalf("GetAllEvents() failed: %v", err)
	}
	if len(events) != 1 || len(events[0].ID) != 36 {
		t.Errorf("expected one event with a UUID, got %+v", events)
	}
}

func TestEventAddCmd_Validation(t *testing.T) {
	tests := []struct {
		name string
		cmd  EventAddCmd
		want string
	}{
		{"missing fields", EventAddCmd{Summary: "x"}, "required"},
		{"bad start", EventAddCmd{Summary: "x", Start: "noon", End: "2025-03-11T19:00"}, "invalid --start"},
		{"bad end", EventAddCmd{Summary: "x", Start: "2025-03-11T19:00", End: "later"}, "invalid --end"},
		{"end before start", EventAddCmd{Summary: "x", Start: "2025-03-11T19:00", End: "2025-03-11T18:00"}, "ends before it starts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestContext(t)
			err := tt.cmd.Run(ctx)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Run() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestEventListCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	for _, c := range []EventAddCmd{
		{ID: "later", Summary: "Presentation", Start: "2025-03-12T14:00", End: "2025-03-12T15:00"},
		{ID: "sooner", Summary: "Standup", Start: "2025-03-10T09:00", End: "2025-03-10T09:15"},
		{ID: "past", Summary: "Old meeting", Start: "2025-03-01T09:00", End: "2025-03-01T10:00"},
	} {
		c := c
		if err := c.Run(ctx); err != nil {
			t.Fatalf("event add failed: %v", err)
		}
	}
	out.Reset()

	if err := (&EventListCmd{}).Run(ctx); err != nil {
		t.Fatalf("event list failed: %v", err)
	}
	listing := out.String()
	if strings.Contains(listing, "Old meeting") {
		t.Errorf("events outside the window should be hidden:\n%s", listing)
	}
	if strings.Index(listing, "Standup") > strings.Index(listing, "Presentation") {
		t.Errorf("events should be sorted by start:\n%s", listing)
	}

	out.Reset()
	if err := (&EventListCmd{All: true}).Run(ctx); err != nil {
		t.Fatalf("event list --all failed: %v", err)
	}
	if !strings.Contains(out.String(), "Old meeting") {
		t.Errorf("--all should include past events:\n%s", out.String())
	}
}

func TestEventDeleteCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)
	add := &EventAddCmd{ID: "e1", Summary: "Exam", Start: "2025-03-11T09:00", End: "2025-03-11T10:00"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("event add failed: %v", err)
	}

	if err := (&EventDeleteCmd{ID: "e1", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("event delete failed: %v", err)
	}
	if _, err := ctx.Store.GetEvent("e1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetEvent() after delete error = %v, want ErrNotFound", err)
	}

	if err := (&EventDeleteCmd{ID: "e1", Yes: true}).Run(ctx); err == nil {
		t.Error("deleting a missing event should fail")
	}
}

func TestEventImportCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	path := filepath.Join(t.TempDir(), "events.json")
	data := `[
		{"id": "e1", "summary": "Lab", "start": "2025-03-11T13:00:00", "end": "2025-03-11T16:00:00"},
		{"id": "e2", "summary": "Gym", "start": "2025-03-11T18:00:00", "end": "2025-03-11T19:00:00"}
	]`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if err := (&EventImportCmd{File: path}).Run(ctx); err != nil {
		t.Fatalf("event import failed: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 2 event(s)") {
		t.Errorf("unexpected output: %s", out.String())
	}

	// Re-importing upserts by id.
	if err := (&EventImportCmd{File: path}).Run(ctx); err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		t.Fatalf("GetAllEvents() failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events after re-import, got %d", len(events))
	}
}

func TestEventImportCmd_RejectsInvalidEvents(t *testing.T) {
	ctx, _ := setupTestContext(t)
	path := filepath.Join(t.TempDir(), "events.json")
	data := `[{"id": "e1", "summary": "", "start": "2025-03-11T13:00:00", "end": "2025-03-11T16:00:00"}]`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if err := (&EventImportCmd{File: path}).Run(ctx); err == nil {
		t.Error("import should reject an event without a summary")
	}
	events, _ := ctx.Store.GetAllEvents()
	if len(events) != 0 {
		t.Errorf("nothing should be written on validation failure, got %d events", len(events))
	}
}
