// Package defaults provides embedded default configuration files.
// Install copies them to the platform data directory (`nebo-contacts init`).
//
// Platform paths:
//
//	macOS:   ~/Library/Application Support/NeboContacts/
//	Windows: %AppData%\NeboContacts\
//	Linux:   ~/.config/nebo-contacts/
//
// Override with NEBO_CONTACTS_DATA_DIR environment variable.
package defaults

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

//go:embed dotcontacts/*
var defaultFiles embed.FS

const embedRoot = "dotcontacts"

// DataDirEnv overrides the platform data directory.
const DataDirEnv = "NEBO_CONTACTS_DATA_DIR"

// ConfigFile is the user configuration file inside the data directory.
const ConfigFile = "config.yaml"

// DataDir returns the platform-appropriate data directory.
func DataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}

	// Linux: lowercase per XDG convention
	if runtime.GOOS == "linux" {
		return filepath.Join(configDir, "nebo-contacts"), nil
	}
	return filepath.Join(configDir, "NeboContacts"), nil
}

// ConfigPath returns <data_dir>/config.yaml. The file may not exist.
func ConfigPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Install creates the data directory and writes every embedded default
// file into it. Existing files are kept unless overwrite is set. It returns
// the directory and the names of the files it wrote.
func Install(overwrite bool) (string, []string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	names, err := ListDefaults()
	if err != nil {
		return "", nil, err
	}
	var written []string
	for _, name := range names {
		dest := filepath.Join(dir, filepath.FromSlash(name))
		if !overwrite {
			if _, err := os.Stat(dest); err == nil {
				continue
			}
		}
		data, err := GetDefault(name)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return "", nil, err
		}
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return "", nil, fmt.Errorf("failed to write %s: %w", dest, err)
		}
		written = append(written, name)
	}
	return dir, written, nil
}

// GetDefault returns the content of a default file by name.
// Example: GetDefault("config.yaml")
func GetDefault(name string) ([]byte, error) {
	return defaultFiles.ReadFile(embedRoot + "/" + name)
}

// ListDefaults returns the slash-separated names of all default files.
func ListDefaults() ([]string, error) {
	var files []string
	err := fs.WalkDir(defaultFiles, embedRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, strings.TrimPrefix(path, embedRoot+"/"))
		}
		return nil
	})
	return files, err
}
