// Package report builds, persists and renders the discovery artifact, the
// single JSON document consumed downstream.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vbagdi/ResearchCode/domain"
)

const SchemaVersion = "1.0.0"

var (
	// SchemaConstraint is the range of artifact schema versions Read accepts.
	SchemaConstraint = "^1"

	DefaultSources = []string{string(domain.OriginCodeHost), string(domain.OriginPackageIndex)}

	DefaultOutput = filepath.Join("data", "discovered_tools.json")

	// ErrMissingArtifact wraps os.ErrNotExist so callers may test for
	// either.
	ErrMissingArtifact = fmt.Errorf("discovered artifact not found: %w", os.ErrNotExist)

	ErrUnsupportedSchema = errors.New("unsupported artifact schema version")
)

// Metadata describes the run which produced an artifact.
type Metadata struct {
	RunID                string               `json:"run_id,omitempty"`
	SchemaVersion        string               `json:"schema_version,omitempty"`
	TotalTools           int                  `json:"total_tools"`
	Timestamp            Timestamp            `json:"timestamp"`
	Sources              []string             `json:"sources"`
	TopicsSearched       []string             `json:"topics_searched"`
	FoundationToolsAdded []string             `json:"foundation_tools_added"`
	MinStars             int                  `json:"min_stars,omitempty"`
	Stats                *domain.CollectStats `json:"stats,omitempty"`
}

// NewMetadata returns metadata stamped with a fresh run id and the current
// schema version.
func NewMetadata(topics []string, seeds []string) *Metadata {
	meta := &Metadata{
		RunID:                uuid.New().String(),
		SchemaVersion:        SchemaVersion,
		Timestamp:            Timestamp{time.Now()},
		Sources:              append([]string{}, DefaultSources...),
		TopicsSearched:       append([]string{}, topics...),
		FoundationToolsAdded: append([]string{}, seeds...),
	}
	return meta
}

// Artifact is the persisted outcome of a discovery run.
type Artifact struct {
	Metadata  *Metadata           `json:"metadata"`
	Tools     []*domain.Candidate `json:"tools"`
	Workflows WorkflowIndex       `json:"workflows"`
}

// Build assembles an artifact.  Tools are stable sorted by descending score
// so ties keep their input order.
func Build(candidates []*domain.Candidate, workflows domain.Workflows, meta *Metadata) *Artifact {
	tools := append([]*domain.Candidate{}, candidates...)
	SortByScore(tools)

	if meta == nil {
		meta = NewMetadata(nil, nil)
	}
	meta.TotalTools = len(tools)

	a := &Artifact{
		Metadata:  meta,
		Tools:     tools,
		Workflows: WorkflowIndex(workflows),
	}
	return a
}

// SortByScore stable sorts candidates by descending quality score.
func SortByScore(candidates []*domain.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score() > candidates[j].Score()
	})
}

// Write persists the artifact to path atomically, creating parent
// directories as needed.
func Write(path string, a *Artifact) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.FileMode(int(0755))); err != nil {
		return errors.Wrapf(err, "creating directory %q", dir)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		f.Close()
		return errors.Wrap(err, "encoding artifact")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "renaming %q to %q", tmp, path)
	}

	log.WithField("path", path).WithField("tools", len(a.Tools)).Info("Wrote artifact")
	return nil
}

// Read loads an artifact.  A missing file yields ErrMissingArtifact.
// Artifacts without a schema version are accepted as legacy output.
func Read(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrMissingArtifact, path)
		}
		return nil, errors.Wrapf(err, "reading %q", path)
	}

	a := &Artifact{}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, errors.Wrapf(err, "decoding %q", path)
	}
	if a.Metadata != nil && a.Metadata.SchemaVersion != "" {
		if err := checkSchema(a.Metadata.SchemaVersion); err != nil {
			return nil, errors.Wrap(err, path)
		}
	}
	return a, nil
}

func checkSchema(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(ErrUnsupportedSchema, "parsing %q: %s", version, err)
	}
	constraint, err := semver.NewConstraint(SchemaConstraint)
	if err != nil {
		return errors.Wrapf(err, "parsing constraint %q", SchemaConstraint)
	}
	if !constraint.Check(v) {
		return errors.Wrapf(ErrUnsupportedSchema, "%v does not satisfy %v", version, SchemaConstraint)
	}
	return nil
}
