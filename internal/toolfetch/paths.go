// Package toolfetch supports tests that need an external tool binary:
// it resolves well-known paths relative to the module root, downloads a
// tool once and verifies its checksum, and cleans output directories
// tolerating the errno noise some filesystems produce on teardown.
package toolfetch

import (
	"path/filepath"
	"runtime"
)

// SourceRoot returns the absolute path of the module root, resolved
// from this file's location at compile time.
func SourceRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filepath.Dir(file)))
}

// ToolDir is where downloaded tooling lives, outside the package tree.
func ToolDir() string {
	return filepath.Join(SourceRoot(), ".tools")
}

// BinaryPath returns the path a downloaded tool binary is installed at.
func BinaryPath(name string) string {
	return filepath.Join(ToolDir(), name)
}

// ChecksumFile returns the path of the pinned sha256 checksum for a
// tool binary.
func ChecksumFile(name string) string {
	return filepath.Join(ToolDir(), name+".sha256")
}

// SchemaFixture returns the path of the embedded schema fixture used by
// wire-format tests.
func SchemaFixture() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", "schema.json")
}

// OutputDir returns the scratch directory tests write generated
// artifacts into.
func OutputDir() string {
	return filepath.Join(ToolDir(), "out")
}
