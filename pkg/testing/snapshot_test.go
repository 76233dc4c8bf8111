package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/blueprint/pkg/elements"
	"github.com/go-drift/blueprint/pkg/geometry"
)

func TestCaptureSnapshot_Structure(t *testing.T) {
	tester := NewViewTesterWithT(t)
	tester.SetSize(geometry.Size{Width: 200, Height: 100})
	tester.PumpElement(elements.Box{BackgroundColor: "red", Wrapped: elements.Label{Text: "hi"}})

	snap := tester.CaptureSnapshot()
	if len(snap.Views) != 1 {
		t.Fatalf("top-level views = %d, want 1", len(snap.Views))
	}
	box := snap.Views[0]
	if box.ID != 1 || box.Type != elements.BoxViewType {
		t.Errorf("box = %d %s", box.ID, box.Type)
	}
	if box.Frame != [4]float64{0, 0, 200, 100} {
		t.Errorf("box frame = %v", box.Frame)
	}
	if len(box.Subviews) != 1 || box.Subviews[0].ID != 2 {
		t.Fatalf("label not captured: %+v", box.Subviews)
	}
}

func TestSnapshot_Diff(t *testing.T) {
	tester := NewViewTesterWithT(t)
	tester.PumpElement(elements.Box{BackgroundColor: "red"})
	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}

	tester.PumpElement(elements.Box{BackgroundColor: "blue"})
	c := tester.CaptureSnapshot()
	diff := c.Diff(a)
	if !hasDiffLine(diff, "-", "backgroundColor: red") || !hasDiffLine(diff, "+", "backgroundColor: blue") {
		t.Errorf("unexpected diff:\n%s", diff)
	}
	reverse := a.Diff(c)
	if !hasDiffLine(reverse, "-", "backgroundColor: blue") || !hasDiffLine(reverse, "+", "backgroundColor: red") {
		t.Errorf("unexpected reverse diff:\n%s", reverse)
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewViewTesterWithT(t)
	tester.PumpElement(elements.Label{Text: "golden"})
	snap := tester.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "testdata", "label.snapshot.yaml")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewViewTesterWithT(t)
	tester.PumpElement(elements.Box{})
	snap := tester.CaptureSnapshot()

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, filepath.Join(t.TempDir(), "missing.yaml"))

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewViewTesterWithT(t)

	tester.PumpElement(elements.Box{BackgroundColor: "red"})
	path := filepath.Join(t.TempDir(), "snap.yaml")
	if err := tester.CaptureSnapshot().UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	tester.PumpElement(elements.Box{BackgroundColor: "green"})
	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	tester.CaptureSnapshot().MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	tester := NewViewTesterWithT(t)
	tester.PumpElement(elements.Box{})
	snap := tester.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "update.snapshot.yaml")
	t.Setenv(UpdateSnapshotsEnv, "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

func hasDiffLine(diff, prefix, text string) bool {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, prefix) && strings.TrimSpace(strings.TrimPrefix(line, prefix)) == text {
			return true
		}
	}
	return false
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
