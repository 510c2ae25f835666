package version

import "testing"

func TestString(t *testing.T) {
	if got, want := String(), "dev (unknown) built unknown"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version || info.Commit != Commit || info.BuildTime != BuildTime {
		t.Errorf("Get() = %+v, want package variables", info)
	}
}
