package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSearchPaths(t *testing.T) {
	tmpDir := t.TempDir()

	file1 := filepath.Join(tmpDir, "file1.txt")
	file2 := filepath.Join(tmpDir, "file2.txt")
	if err := os.WriteFile(file1, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name    string
		paths   []string
		want    string
		wantErr bool
	}{
		{
			"finds first existing file",
			[]string{file1, file2},
			file1,
			false,
		},
		{
			"returns error when no files exist",
			[]string{file2, filepath.Join(tmpDir, "nonexistent.txt")},
			"",
			true,
		},
		{
			"handles empty path list",
			[]string{},
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SearchPaths(tt.paths)
			if (err != nil) != tt.wantErr {
				t.Errorf("SearchPaths() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("SearchPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchPathsOptional(t *testing.T) {
	tmpDir := t.TempDir()

	file1 := filepath.Join(tmpDir, "file1.txt")
	if err := os.WriteFile(file1, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if got := SearchPathsOptional([]string{filepath.Join(tmpDir, "missing.txt"), file1}); got != file1 {
		t.Errorf("SearchPathsOptional() = %v, want %v", got, file1)
	}

	if got := SearchPathsOptional([]string{filepath.Join(tmpDir, "missing.txt")}); got != "" {
		t.Errorf("SearchPathsOptional() = %v, want empty string", got)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	file := filepath.Join(tmpDir, "exists.txt")
	if err := os.WriteFile(file, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(file) {
		t.Error("FileExists() = false for existing file")
	}

	if FileExists(tmpDir) {
		t.Error("FileExists() = true for a directory")
	}

	if FileExists(filepath.Join(tmpDir, "missing.txt")) {
		t.Error("FileExists() = true for missing file")
	}
}
