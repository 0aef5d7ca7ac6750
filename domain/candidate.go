package domain

import (
	"strings"
	"time"

	"github.com/vbagdi/ResearchCode/pkg/contains"
)

// Origin identifies the registry which first produced a candidate record.
type Origin string

const (
	OriginCodeHost     Origin = "github"
	OriginPackageIndex Origin = "pypi"

	// FoundationTopic marks records injected from the curated seed list.
	FoundationTopic = "foundation-tool"
)

// Candidate is a single discovered package or repository.
//
// Optional upstream values are pointers so that an unknown value is never
// mistaken for a real zero by the scorer.
type Candidate struct {
	Name               string            `json:"name"`
	FullName           string            `json:"full_name,omitempty"`
	Origin             Origin            `json:"source"`
	CodeHostURL        string            `json:"github_url,omitempty"`
	IndexURL           string            `json:"pypi_url,omitempty"`
	Description        *string           `json:"description,omitempty"`
	Stars              *int              `json:"stars,omitempty"`
	Forks              *int              `json:"forks,omitempty"`
	Language           string            `json:"language,omitempty"`
	Topics             []string          `json:"topics,omitempty"`
	UpdatedAt          *time.Time        `json:"updated_at,omitempty"`
	CreatedAt          *time.Time        `json:"created_at,omitempty"`
	DaysSinceUpdate    *int              `json:"days_since_update,omitempty"`
	Version            string            `json:"version,omitempty"`
	Author             string            `json:"author,omitempty"`
	HomePage           string            `json:"home_page,omitempty"`
	Keywords           string            `json:"keywords,omitempty"`
	ProjectURLs        map[string]string `json:"project_urls,omitempty"`
	HasSecondarySource bool              `json:"has_pypi"`
	QualityScore       *float64          `json:"quality_score,omitempty"`
	Workflows          []string          `json:"workflows,omitempty"`
}

// DescriptionText returns the description or an empty string when absent.
func (c *Candidate) DescriptionText() string {
	if c.Description == nil {
		return ""
	}
	return *c.Description
}

// SearchText is the case-folded concatenation of description and name which
// keyword matching operates on.
func (c *Candidate) SearchText() string {
	return strings.ToLower(c.DescriptionText() + " " + c.Name)
}

// IsFoundation reports whether the record was injected from the seed list.
func (c *Candidate) IsFoundation() bool {
	if c.Origin != OriginPackageIndex {
		return false
	}
	return contains.String(c.Topics, FoundationTopic)
}

// Score returns the quality score, or 0 when scoring has not run yet.
func (c *Candidate) Score() float64 {
	if c.QualityScore == nil {
		return 0
	}
	return *c.QualityScore
}

// IntPtr, StringPtr and FloatPtr are conveniences for populating optional
// fields.
func IntPtr(i int) *int              { return &i }
func StringPtr(s string) *string     { return &s }
func FloatPtr(f float64) *float64    { return &f }
func TimePtr(t time.Time) *time.Time { return &t }
