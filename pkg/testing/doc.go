// Package testing provides helpers for testing views and properties.
//
// Import it under an alias to avoid clashing with the standard library:
//
//	import cascadetest "github.com/go-drift/cascade/pkg/testing"
//
// # Native peers
//
// FakePeer records every value pushed to it and can serve platform
// defaults or fail selected pushes:
//
//	peer := cascadetest.NewFakePeer()
//	peer.Defaults["text"] = "placeholder"
//	core.InitNativeView(label, peer)
//	if got := peer.Value("text"); got != "Hello" { ... }
//
// # Finding views
//
//	btn := cascadetest.Find(root, cascadetest.ByID("submit")).First()
//
// # Snapshots
//
// Capture the resolved, non-default property values of a tree and compare
// them against a golden file:
//
//	cascadetest.CaptureSnapshot(root).MatchesFile(t, "testdata/form.snapshot.json")
//
// Update golden files with:
//
//	CASCADE_UPDATE_SNAPSHOTS=1 go test ./...
package testing
