// Package storage handles the on-disk layout of a deliverable output
// directory: loading generated documents into artifacts and persisting
// validation reports and summaries.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/calebodette/docaudit/pkg/models"
)

// kindFiles maps each document kind to its conventional filename inside an
// output directory.
var kindFiles = map[models.DocumentKind]string{
	models.KindCoordination: "00_agent_coordination_report.md",
	models.KindDiscovery:    "01_discovery_report.md",
	models.KindSOW:          "02_scope_of_work.md",
	models.KindArchitecture: "03_technical_architecture.md",
	models.KindRoadmap:      "04_implementation_roadmap.md",
}

// ArtifactFileName returns the conventional filename for a document kind.
func ArtifactFileName(kind models.DocumentKind) string {
	return kindFiles[kind]
}

// ArtifactStore loads deliverable documents from an output directory.
type ArtifactStore interface {
	LoadAll(dir string) (map[models.DocumentKind]models.Artifact, error)
	LoadFile(kind models.DocumentKind, path string) (models.Artifact, error)
}

type artifactStore struct{}

// NewArtifactStore creates an ArtifactStore reading the conventional output
// directory layout.
func NewArtifactStore() ArtifactStore {
	return artifactStore{}
}

// LoadAll reads every conventionally named document present in dir. Missing
// files mean the kind is absent from the returned map; they are not errors,
// since a generation round may legitimately not have produced every
// deliverable yet.
func (artifactStore) LoadAll(dir string) (map[models.DocumentKind]models.Artifact, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("opening output directory %s: %w", dir, err)
	}

	artifacts := make(map[models.DocumentKind]models.Artifact)
	for _, kind := range models.KindOrder {
		path := filepath.Join(dir, kindFiles[kind])
		data, err := os.ReadFile(path) //nolint:gosec // G304: reading documents from the caller-chosen output directory
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		artifacts[kind] = models.Artifact{Kind: kind, Text: string(data)}
	}
	return artifacts, nil
}

// LoadFile reads a single document from an explicit path as the given kind.
func (artifactStore) LoadFile(kind models.DocumentKind, path string) (models.Artifact, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading a caller-named document file
	if err != nil {
		return models.Artifact{}, fmt.Errorf("reading %s document %s: %w", kind, path, err)
	}
	return models.Artifact{Kind: kind, Text: string(data)}, nil
}
