package service

import (
	"errors"
	"mime"
	"path"
	"path/filepath"
	"strings"

	model "github.com/bsgreeks/greeks-validator/internal/artifact/model"
	artifactRepo "github.com/bsgreeks/greeks-validator/internal/artifact/repo"
)

const defaultContentType = "application/octet-stream"

var contentTypes = map[model.Kind]string{
	model.KindCSV: "text/csv; charset=utf-8",
	model.KindPNG: "image/png",
}

// Service interface for artifact service
type Service interface {
	GetManifest() (model.Manifest, error)
	GetArtifact(name string) (model.Content, error)
}

// ArtifactService implement service
type ArtifactService struct {
	repo artifactRepo.Repo
}

// NewArtifactService return artifact service instance
func NewArtifactService(repo artifactRepo.Repo) *ArtifactService {
	return &ArtifactService{
		repo: repo,
	}
}

// GetManifest lists the published csv and png names of the output directory
func (A *ArtifactService) GetManifest() (manifest model.Manifest, err error) {
	alist, err := A.repo.GetArtifactList()
	if err != nil {
		if errors.Is(err, artifactRepo.ErrDirectoryMissing) {
			return manifest, newError(KindNotFound, "Output directory not found", err)
		}
		return manifest, newError(KindServerError, err.Error(), err)
	}

	manifest.CSV = []string{}
	manifest.Plots = []string{}

	for _, a := range alist.Artifacts {
		switch a.Kind {
		case model.KindCSV:
			manifest.CSV = append(manifest.CSV, a.Name)
		case model.KindPNG:
			manifest.Plots = append(manifest.Plots, a.Name)
		}
	}

	return
}

// GetArtifact opens a single artifact by name. The caller must close the
// returned Body.
func (A *ArtifactService) GetArtifact(name string) (content model.Content, err error) {
	if !isSafeFilename(name) {
		return content, newError(KindBadRequest, "Invalid filename", nil)
	}
	if name == "" {
		return content, newError(KindNotFound, "File not found", nil)
	}

	file, err := A.repo.OpenArtifact(name)
	if err != nil {
		if errors.Is(err, artifactRepo.ErrArtifactMissing) {
			return content, newError(KindNotFound, "File not found", err)
		}
		return content, newError(KindServerError, "Internal server error", err)
	}

	content.Name = name
	content.ContentType = contentTypeOf(name)
	content.Size = file.Size
	content.ModTime = file.ModTime
	content.Body = file.Body

	return
}

// isSafeFilename accepts plain names only, no traversal and no nesting
func isSafeFilename(name string) bool {
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return false
	}
	return !path.IsAbs(name) && !filepath.IsAbs(name)
}

func contentTypeOf(name string) string {
	if kind, ok := model.KindOf(name); ok {
		return contentTypes[kind]
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return defaultContentType
}
