// Package testing provides a test harness for Blueprint elements.
//
// # Quick Start
//
// Create a tester, pump an element, and make assertions against the
// reconciled view tree:
//
//	func TestSettings(t *testing.T) {
//	    tester := bptest.NewViewTesterWithT(t)
//	    tester.PumpElement(SettingsScreen{})
//
//	    title := tester.Find(bptest.ByText("Settings")).First()
//	    if title.View().LayoutAttributes().Frame().Top != 0 {
//	        t.Error("title should be at the top")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare the view tree against a golden YAML file:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/settings.snapshot.yaml")
//
// Update snapshots with:
//
//	BLUEPRINT_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// The tester runs on the headless platform, whose animations complete in
// virtual time:
//
//	tester.Advance(100 * time.Millisecond)
//	tester.PumpAndSettle(time.Second)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import bptest "github.com/go-drift/blueprint/pkg/testing"
package testing
