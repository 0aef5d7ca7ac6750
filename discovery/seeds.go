package discovery

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// DefaultTopics are the code host topics swept by a discovery run.
var DefaultTopics = []string{
	"cheminformatics",
	"drug-discovery",
	"computational-chemistry",
	"molecular-modeling",
	"medicinal-chemistry",
	"chemical-informatics",
}

// DefaultSeeds are foundational packages which are injected from the package
// index even when no topic search surfaces them.
var DefaultSeeds = []string{
	"rdkit-pypi",
	"rdkit",
	"openbabel-wheel",
	"openbabel",
	"biopython",
	"prody",
	"mordred",
	"chempy",
	"pymol-open-source",
	"biotite",
}

// DefaultMinStars is the popularity floor applied to topic searches.
var DefaultMinStars = 10

// InputFormat controls how ParseList interprets its input: "text" or "json".
var InputFormat = "text"

// ParseList parses a list of names, either as a JSON array of strings or as
// newline delimited plaintext.  Blank lines and lines starting with '#' are
// ignored in plaintext.
func ParseList(r io.Reader) ([]string, error) {
	switch InputFormat {
	case "json", "j":
		return parseListJSON(r)
	case "text", "txt", "t":
		return parseListText(r)
	default:
		return nil, fmt.Errorf("unrecognized input format %q", InputFormat)
	}
}

// ReadListFile reads a list file.  The format is inferred from a ".json"
// extension, otherwise InputFormat applies.
func ReadListFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(filename), ".json") {
		return parseListJSON(f)
	}
	return ParseList(f)
}

func parseListJSON(r io.Reader) ([]string, error) {
	var (
		dec   = json.NewDecoder(r)
		names []string
	)
	if err := dec.Decode(&names); err != nil {
		return nil, errors.Wrap(err, "decoding JSON list")
	}
	return names, nil
}

func parseListText(r io.Reader) ([]string, error) {
	var (
		scanner = bufio.NewScanner(r)
		names   = []string{}
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
