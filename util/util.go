package util

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// Files of a dataset directory
const (
	TrainPosFile = "train_pos.txt"
	TrainNegFile = "train_neg.txt"
	TestPosFile  = "test_pos.txt"
	TestNegFile  = "test_neg.txt"
)

// DatasetFiles are the files every dataset directory must contain
var DatasetFiles = []string{TrainPosFile, TrainNegFile, TestPosFile, TestNegFile}

// ErrNoDatasets is returned by SelectDataset when root holds no dataset directory
var ErrNoDatasets = errors.New("no dataset directories found")

// Clean up the CLI response to remove the bullet point
func FormatCliResponse(response string) string {
	return strings.Replace(response, "○ ", "", -1)
}

// SelectDataset prompts for one of the dataset directories under root
func SelectDataset(root string) (string, error) {
	datasets := GetAvailableDatasets(root)
	if len(datasets) == 0 {
		return "", ErrNoDatasets
	}

	options := []string{}
	for _, d := range datasets {
		options = append(options, "○ "+d)
	}

	prompt := &survey.Select{
		Message: "Select a dataset to train on:",
		Options: options,
	}

	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return filepath.Join(root, FormatCliResponse(selected)), nil
}

// GetAvailableDatasets lists the directories under root holding all DatasetFiles
func GetAvailableDatasets(root string) []string {
	files, err := os.ReadDir(root)
	if err != nil {
		log.Println(err)
		return nil
	}

	directories := []string{}
	for _, f := range files {
		if !f.IsDir() || strings.HasPrefix(f.Name(), ".") {
			continue
		}
		if IsDatasetDir(filepath.Join(root, f.Name())) {
			directories = append(directories, f.Name())
		}
	}

	return directories
}

// IsDatasetDir reports whether dir contains every dataset file
func IsDatasetDir(dirName string) bool {
	for _, name := range DatasetFiles {
		if isValid, _ := CheckFileIsValid(filepath.Join(dirName, name)); !isValid {
			return false
		}
	}
	return true
}

func CheckFileIsValid(fileName string) (bool, error) {
	info, err := os.Stat(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil // File does not exist
		}
		return false, err // Some other error occurred
	}
	return !info.IsDir(), nil
}

const (
	TerminalReset  = "\033[0m"
	TerminalRed    = "\033[31m"
	TerminalGreen  = "\033[32m"
	TerminalYellow = "\033[33m"
	TerminalCyan   = "\033[36m"
)
