package util

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeDataset(t *testing.T, dir string, files []string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("good"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGetAvailableDatasets(t *testing.T) {
	root := t.TempDir()
	writeDataset(t, filepath.Join(root, "imdb"), DatasetFiles)
	writeDataset(t, filepath.Join(root, "partial"), DatasetFiles[:2])
	writeDataset(t, filepath.Join(root, ".git"), DatasetFiles)

	expected := []string{"imdb"}
	if got := GetAvailableDatasets(root); !reflect.DeepEqual(got, expected) {
		t.Errorf("GetAvailableDatasets() Failed, expected %v, got %v", expected, got)
	}

	if got := GetAvailableDatasets(filepath.Join(root, "missing")); len(got) != 0 {
		t.Errorf("GetAvailableDatasets() Failed, expected no datasets, got %v", got)
	}
}

func TestSelectDatasetWithoutDatasets(t *testing.T) {
	if _, err := SelectDataset(t.TempDir()); err != ErrNoDatasets {
		t.Errorf("SelectDataset() Failed, expected %v, got %v", ErrNoDatasets, err)
	}
}

func TestCheckFileIsValid(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, []string{"train_pos.txt"})

	testCases := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "Existing file", path: filepath.Join(dir, "train_pos.txt"), expected: true},
		{name: "Missing file", path: filepath.Join(dir, "nope.txt"), expected: false},
		{name: "Directory", path: dir, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			valid, err := CheckFileIsValid(tc.path)
			if err != nil {
				t.Fatalf("CheckFileIsValid() Failed: %v", err)
			}
			if valid != tc.expected {
				t.Errorf("CheckFileIsValid() Failed, expected %v, got %v", tc.expected, valid)
			}
		})
	}
}

func TestFormatCliResponse(t *testing.T) {
	if got := FormatCliResponse("○ imdb"); got != "imdb" {
		t.Errorf("FormatCliResponse() Failed, expected %v, got %v", "imdb", got)
	}
}
