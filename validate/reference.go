package validate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vbagdi/ResearchCode/domain"
)

var (
	DefaultReferencePath = filepath.Join("data", "gold_standard.json")
	DefaultMetricsPath   = filepath.Join("results", "validation_metrics.json")

	// DefaultReference is used when no reference file exists.
	DefaultReference = []string{
		"rdkit",
		"openbabel",
		"deepchem",
		"pubchempy",
		"mordred",
		"chempy",
		"mdanalysis",
		"pymol-open-source",
		"prody",
		"biopython",
	}
)

type referenceFile struct {
	Tools []string `json:"gold_standard_tools" yaml:"gold_standard_tools"`
}

// LoadReference reads the reference names from a JSON file, or YAML when
// the extension is .yaml or .yml.  A missing file falls back to
// DefaultReference.
func LoadReference(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Warnf("Reference file not found, using the %v built-in reference tools", len(DefaultReference))
			return append([]string{}, DefaultReference...), nil
		}
		return nil, errors.Wrapf(err, "reading reference %q", path)
	}

	var ref referenceFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &ref)
	default:
		err = json.Unmarshal(data, &ref)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding reference %q", path)
	}
	if ref.Tools == nil {
		return nil, errors.Errorf("reference %q has no gold_standard_tools field", path)
	}
	return ref.Tools, nil
}

// Save writes the metrics as indented JSON, creating parent directories.
func Save(path string, m domain.ValidationMetrics) error {
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(int(0755))); err != nil {
		return errors.Wrap(err, "creating metrics directory")
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding metrics")
	}
	if err := os.WriteFile(path, append(data, '\n'), os.FileMode(int(0644))); err != nil {
		return errors.Wrapf(err, "writing %q", path)
	}
	log.WithField("path", path).Info("Saved validation metrics")
	return nil
}
