package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	model "github.com/bsgreeks/greeks-validator/internal/artifact/model"
)

// FileRepo interface with file system based artifact information
type FileRepo struct {
	OutputDir string
}

// NewFileRepo create new instance
func NewFileRepo(outputDir string) *FileRepo {
	return &FileRepo{
		OutputDir: outputDir,
	}
}

// GetArtifactList lists csv and png files of the output directory.
// Entries are returned in lexical order, only regular files (or symlinks to
// regular files that stay inside the directory) are kept.
func (A *FileRepo) GetArtifactList() (artifactsList ArtifactList, err error) {
	entries, err := os.ReadDir(A.OutputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return artifactsList, ErrDirectoryMissing
		}
		return artifactsList, fmt.Errorf("failed to read output directory: %w", err)
	}

	root, err := os.OpenRoot(A.OutputDir)
	if err != nil {
		return artifactsList, fmt.Errorf("failed to open output directory: %w", err)
	}
	defer root.Close()

	artifactsList.Artifacts = []model.Artifact{}

	for _, entry := range entries {
		kind, ok := model.KindOf(entry.Name())
		if !ok {
			continue
		}
		if !entry.Type().IsRegular() {
			info, statErr := root.Stat(entry.Name())
			if statErr != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		artifactsList.Artifacts = append(artifactsList.Artifacts, model.Artifact{Name: entry.Name(), Kind: kind})
	}
	return
}

// OpenArtifact opens name for reading. The lookup is confined to the output
// directory, the caller owns the returned Body.
func (A *FileRepo) OpenArtifact(name string) (artifact ArtifactFile, err error) {
	root, err := os.OpenRoot(A.OutputDir)
	if err != nil {
		if isMissing(err) {
			return artifact, ErrArtifactMissing
		}
		return artifact, fmt.Errorf("failed to open output directory: %w", err)
	}
	defer root.Close()

	// opening a fifo or device blocks, check the type first
	info, err := root.Stat(name)
	if err != nil {
		if isMissing(err) {
			return artifact, ErrArtifactMissing
		}
		return artifact, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return artifact, ErrArtifactMissing
	}

	file, err := root.Open(name)
	if err != nil {
		if isMissing(err) {
			return artifact, ErrArtifactMissing
		}
		return artifact, fmt.Errorf("failed to open %s: %w", name, err)
	}

	info, err = file.Stat()
	if err != nil {
		file.Close()
		return artifact, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		file.Close()
		return artifact, ErrArtifactMissing
	}

	artifact.Size = info.Size()
	artifact.ModTime = info.ModTime()
	artifact.Body = file

	return
}

func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
