package storage

import (
	"bytes"
	"compress/gzip"
	"io"
)

// NewGzipStore returns a FileStore that keeps each key as a gzipped
// <key>.json.gz file within baseDir.
func NewGzipStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir, ext: ".json.gz", encode: deflate, decode: inflate}
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}
