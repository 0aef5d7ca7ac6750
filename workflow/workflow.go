// Package workflow assigns candidates to the fixed set of chemistry workflow
// buckets by keyword substring match.
package workflow

import (
	log "github.com/sirupsen/logrus"

	"github.com/vbagdi/ResearchCode/domain"
	"github.com/vbagdi/ResearchCode/pkg/contains"
)

// Definition is a static bucket: a name plus its keyword set.
type Definition struct {
	Name     string
	Keywords []string
}

// Definitions is the closed bucket enumeration, in output order.
var Definitions = []Definition{
	{Name: "virtual_screening", Keywords: []string{"dock", "screen", "virtual", "binding", "score"}},
	{Name: "property_prediction", Keywords: []string{"predict", "qsar", "admet", "property", "descriptor", "ml", "machine"}},
	{Name: "similarity_search", Keywords: []string{"similar", "search", "fingerprint", "compare", "cluster"}},
	{Name: "molecule_generation", Keywords: []string{"generate", "design", "novo", "synthesis", "retro"}},
	{Name: "visualization", Keywords: []string{"visual", "view", "render", "display", "plot", "draw"}},
	{Name: "io_conversion", Keywords: []string{"convert", "format", "read", "write", "parse", "babel"}},
	{Name: "simulation", Keywords: []string{"dynamics", "simulation", "md", "trajectory", "force"}},
	{Name: "database_access", Keywords: []string{"database", "pubchem", "chembl", "api", "query"}},
}

// Names lists the bucket names in output order.
func Names() []string {
	names := make([]string, len(Definitions))
	for i, def := range Definitions {
		names[i] = def.Name
	}
	return names
}

// Lookup returns the named bucket definition.
func Lookup(name string) (Definition, bool) {
	for _, def := range Definitions {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// Matches reports whether c belongs in the bucket.
func (def Definition) Matches(c *domain.Candidate) bool {
	return contains.Any(c.SearchText(), def.Keywords)
}

// Categorize builds one bucket per definition, appending candidate names in
// input order, and records the matched bucket names on each candidate.  A
// candidate may land in zero, one or many buckets.
func Categorize(candidates []*domain.Candidate) domain.Workflows {
	workflows := make(domain.Workflows, len(Definitions))
	for i, def := range Definitions {
		workflows[i] = &domain.WorkflowBucket{
			Name:     def.Name,
			Keywords: append([]string{}, def.Keywords...),
			Tools:    []string{},
		}
	}

	for _, c := range candidates {
		c.Workflows = []string{}
		for i, def := range Definitions {
			if def.Matches(c) {
				workflows[i].Tools = append(workflows[i].Tools, c.Name)
				c.Workflows = append(c.Workflows, def.Name)
			}
		}
	}

	for _, b := range workflows {
		log.WithField("workflow", b.Name).WithField("tools", len(b.Tools)).Debug("Categorized")
	}
	return workflows
}
