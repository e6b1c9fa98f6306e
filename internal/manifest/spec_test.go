package manifest

import "testing"

func TestDependencySpec_Render(t *testing.T) {
	remote := VersionOnly("1.2.0")
	if got := remote.Render("dep-a"); got != `dep-a = "1.2.0"` {
		t.Errorf("Render() = %q", got)
	}
	if remote.HasPath() {
		t.Error("VersionOnly must not carry a path")
	}

	local := VersionAndPath("1.2.0", "crates/dep-a")
	want := `dep-a = { version = "1.2.0", path = "crates/dep-a" }`
	if got := local.Render("dep-a"); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if !local.HasPath() {
		t.Error("VersionAndPath must carry a path")
	}
	if local.Version() != "1.2.0" {
		t.Errorf("Version() = %q", local.Version())
	}
}
