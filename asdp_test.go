package asdp

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGetHome(t *testing.T) {
	t.Run("with the environment override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(HomeEnv, dir)
		home, err := GetHome()
		if err != nil {
			t.Fatal(err)
		}
		if home != dir {
			t.Fatal("unexpected home", home)
		}
		path, err := DefaultSettingsPath()
		if err != nil {
			t.Fatal(err)
		}
		if path != filepath.Join(dir, "settings.hujson") {
			t.Fatal("unexpected settings path", path)
		}
	})

	t.Run("without the environment override", func(t *testing.T) {
		t.Setenv(HomeEnv, "")
		t.Setenv("HOME", "/home/surveyor")
		home, err := GetHome()
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(home, ".asdp") {
			t.Fatal("unexpected home", home)
		}
	})
}

func TestUserAgent(t *testing.T) {
	if UserAgent != "asdp/"+Version {
		t.Fatal("unexpected user agent", UserAgent)
	}
}
