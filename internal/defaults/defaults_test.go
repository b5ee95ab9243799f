package defaults

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

func TestListDefaults(t *testing.T) {
	files, err := ListDefaults()
	if err != nil {
		t.Fatalf("ListDefaults failed: %v", err)
	}
	if !slices.Contains(files, ConfigFile) {
		t.Errorf("expected %s in %v", ConfigFile, files)
	}
}

func TestGetDefault(t *testing.T) {
	content, err := GetDefault(ConfigFile)
	if err != nil {
		t.Fatalf("GetDefault failed: %v", err)
	}
	if len(content) == 0 {
		t.Error("config.yaml content is empty")
	}
}

func TestDataDirOverride(t *testing.T) {
	want := t.TempDir()
	t.Setenv(DataDirEnv, want)

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if dir != want {
		t.Errorf("expected %s, got %s", want, dir)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath failed: %v", err)
	}
	if path != filepath.Join(want, "config.yaml") {
		t.Errorf("unexpected config path %s", path)
	}
}

func TestDataDirPlatformName(t *testing.T) {
	t.Setenv(DataDirEnv, "")

	dir, err := DataDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	base := filepath.Base(dir)
	want := "NeboContacts"
	if runtime.GOOS == "linux" {
		want = "nebo-contacts"
	}
	if base != want {
		t.Errorf("expected data dir to end with %s, got %s", want, base)
	}
}

func TestInstallKeepsExistingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv(DataDirEnv, dir)

	got, written, err := Install(false)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if got != dir {
		t.Errorf("expected %s, got %s", dir, got)
	}
	all, _ := ListDefaults()
	if !slices.Equal(written, all) {
		t.Errorf("expected first install to write %v, wrote %v", all, written)
	}

	configPath := filepath.Join(dir, ConfigFile)
	custom := []byte("log:\n  level: debug\n")
	if err := os.WriteFile(configPath, custom, 0644); err != nil {
		t.Fatal(err)
	}
	_, written, err = Install(false)
	if err != nil {
		t.Fatalf("second Install failed: %v", err)
	}
	if slices.Contains(written, ConfigFile) {
		t.Errorf("second install rewrote %s", ConfigFile)
	}
	data, _ := os.ReadFile(configPath)
	if string(data) != string(custom) {
		t.Error("Install overwrote an existing config")
	}
}

func TestInstallOverwriteRestoresDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv(DataDirEnv, dir)

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(configPath, []byte("broken"), 0644); err != nil {
		t.Fatal(err)
	}

	_, written, err := Install(true)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if !slices.Contains(written, ConfigFile) {
		t.Errorf("expected %s in %v", ConfigFile, written)
	}
	data, _ := os.ReadFile(configPath)
	def, _ := GetDefault(ConfigFile)
	if string(data) != string(def) {
		t.Error("overwrite did not restore the default config")
	}
}
