//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

const configName = ".listbox.toml"

// CreateTestWorkspace creates a temporary directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteConfig writes a config file into the workspace
func (tf *TUITestFramework) WriteConfig(contents string) error {
	return os.WriteFile(filepath.Join(tf.workspace, configName), []byte(contents), 0644)
}

// ReadConfig returns the workspace config file
func (tf *TUITestFramework) ReadConfig() (string, error) {
	data, err := os.ReadFile(filepath.Join(tf.workspace, configName))
	return string(data), err
}
