package tuning

import "testing"

func TestClassifyWatchedFiles(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"tuning/runner.yaml", ChangeTuning, true},
		{"tuning/RUNNER.YML", ChangeTuning, true},
		{"director/scripts/waves.tengo", ChangeScript, true},
		{"tuning/runner.yaml.swp", 0, false},
		{"tuning/notes.txt", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		kind, ok := classify(c.path)
		if ok != c.ok || (ok && kind != c.kind) {
			t.Fatalf("classify(%q) = (%v, %v), want (%v, %v)", c.path, kind, ok, c.kind, c.ok)
		}
	}
}
