package model

import (
	"io"
	"path/filepath"
	"time"
)

// Kind artifact type derived from the file extension
type Kind string

const (
	KindCSV Kind = "csv"
	KindPNG Kind = "png"
)

// KindOf returns the artifact kind of a file name, ok is false for
// extensions the service does not publish. Matching is case sensitive.
func KindOf(name string) (kind Kind, ok bool) {
	switch filepath.Ext(name) {
	case ".csv":
		return KindCSV, true
	case ".png":
		return KindPNG, true
	}
	return "", false
}

// Artifact represent a result file in the output directory
type Artifact struct {
	Name string
	Kind Kind
}

// Manifest listing of published artifacts, in directory order
type Manifest struct {
	CSV   []string
	Plots []string
}

// Content an opened artifact ready to be streamed
type Content struct {
	Name        string
	ContentType string
	Size        int64
	ModTime     time.Time
	Body        io.ReadCloser
}
