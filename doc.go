// Package chemtools discovers, ranks and categorizes open-source Python
// chemistry software.
//
// # Overview
//
// A discovery run is a batch pipeline made of the following stages:
//
// 1. Collection
//
// Each configured topic (cheminformatics, drug-discovery, ...) is searched on
// the code host, sorted by stars and capped at one page of 30 results per
// topic.  Results are merged in order; when the same repository shows up under
// several topics the first capture wins.
//
// Every code host result is then looked up on the package index under a
// guessed name (lowercased, underscores turned into hyphens).  A hit marks the
// candidate as available from both registries.
//
// Finally a short list of foundation packages (rdkit, openbabel, biopython,
// ...) is injected straight from the package index for any name not already
// present.  These carry the "foundation-tool" topic.
//
// 2. Deduplication
//
// Candidates sharing a case-insensitive name are collapsed, keeping the first.
//
// Three name comparisons exist and they are deliberately different:
//
//	dedupe      RDKit == rdkit, rd-kit != rdkit
//	seed        rd-kit == rd_kit == rdkit
//	validation  seed rule plus spaces removed
//
// 3. Scoring
//
// An additive score made of popularity tiers, update recency, domain keyword
// hits, cross-registry availability, topic richness and the foundation bonus.
// See the quality package for the exact table.
//
// 4. Categorization
//
// Each candidate is matched against eight workflow buckets (virtual
// screening, property prediction, ...).  Membership is not exclusive.
//
// 5. Persistence
//
// The sorted tools, workflow buckets and run metadata are written as a single
// JSON artifact, data/discovered_tools.json by default.  Run summaries and
// package index lookups are kept in a BoltDB file.
//
// # Validation
//
// `chemtools validate` compares the artifact against a curated reference list
// and reports recall and precision@20.
package chemtools
