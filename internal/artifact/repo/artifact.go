package repo

import (
	"errors"
	"io"
	"time"

	model "github.com/bsgreeks/greeks-validator/internal/artifact/model"
)

//go:generate moq -out artifact_repo_moq.go . Repo

var (
	// ErrDirectoryMissing output directory does not exist
	ErrDirectoryMissing = errors.New("output directory not found")
	// ErrArtifactMissing requested entry does not exist or is not a regular file
	ErrArtifactMissing = errors.New("artifact not found")
)

// ArtifactList artifacts found in the output directory
type ArtifactList struct {
	Artifacts []model.Artifact
}

// ArtifactFile opened artifact file
type ArtifactFile struct {
	Size    int64
	ModTime time.Time
	Body    io.ReadCloser
}

// Repo interface to operate with artifact
type Repo interface {
	GetArtifactList() (ArtifactList, error)
	OpenArtifact(name string) (ArtifactFile, error)
}
