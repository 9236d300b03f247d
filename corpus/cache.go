package corpus

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"hash/fnv"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/geekalexis/sentiment/logger"
)

type FileOps interface {
	MkdirAll(dirName string, perm os.FileMode) error
	CompressAndWriteGzipFile(filename string, data interface{}, dirName string) error
}

type FileOpsImpl struct{}

func (f FileOpsImpl) MkdirAll(dirName string, perm os.FileMode) error {
	return os.MkdirAll(dirName, perm)
}

func (f FileOpsImpl) CompressAndWriteGzipFile(filename string, data interface{}, dirName string) error {
	return CompressAndWriteGzipFile(filename, data, dirName)
}

type FileOpsNoOp struct{}

func (f FileOpsNoOp) MkdirAll(dirName string, perm os.FileMode) error {
	return nil
}

func (f FileOpsNoOp) CompressAndWriteGzipFile(filename string, data interface{}, dirName string) error {
	return nil
}

// This function is used to write and compress a datastructure to disk
func CompressAndWriteGzipFile(fileName string, data interface{}, dirName string) error {
	var compressedData bytes.Buffer
	gzipWriter := gzip.NewWriter(&compressedData)

	encoder := gob.NewEncoder(gzipWriter)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("error encoding corpus: %w", err)
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("error closing gzip writer: %w", err)
	}

	if err := os.WriteFile(path.Join(dirName, fileName), compressedData.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing compressed data to disk: %w", err)
	}

	return nil
}

// This function is used to read and decompress a datastructure written by CompressAndWriteGzipFile
func ReadGzipFile(filePath string, out interface{}) error {
	compressedData, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	gzipReader, err := gzip.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		return fmt.Errorf("error opening gzip reader: %w", err)
	}
	defer gzipReader.Close()

	if err := gob.NewDecoder(gzipReader).Decode(out); err != nil {
		return fmt.Errorf("error decoding corpus: %w", err)
	}
	return nil
}

// cacheName derives the cache file name from the source file name and a hash
// of its content, so an edited source file is parsed again.
func cacheName(filePath string, raw []byte) string {
	h := fnv.New64a()
	h.Write(raw)
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return fmt.Sprintf("%s.%016x.gz", base, h.Sum64())
}

// Load reads a raw corpus file and tokenizes it. When cacheDir is set the
// tokenized corpus is read from, or written to, a gzipped gob under it.
// Cache failures are logged and never fail the load.
func Load(filePath string, cacheDir string, tokenize Tokenizer, ops FileOps) (Corpus, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading corpus file: %w", err)
	}

	if cacheDir == "" {
		return tokenize(string(raw)), nil
	}

	name := cacheName(filePath, raw)
	var cached Corpus
	if err := ReadGzipFile(path.Join(cacheDir, name), &cached); err == nil {
		logger.HandleLog("loaded %s from cache (%d documents)", filePath, len(cached))
		return cached, nil
	}

	c := tokenize(string(raw))

	if err := ops.MkdirAll(cacheDir, 0755); err != nil {
		logger.HandleError(err)
		return c, nil
	}
	if err := ops.CompressAndWriteGzipFile(name, c, cacheDir); err != nil {
		logger.HandleError(err)
	}
	return c, nil
}
