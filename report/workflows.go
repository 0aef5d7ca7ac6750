package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vbagdi/ResearchCode/domain"
)

// WorkflowIndex marshals as a JSON object keyed by bucket name with bucket
// order preserved in both directions.  Nil buckets are skipped.
type WorkflowIndex domain.Workflows

func (wi WorkflowIndex) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	n := 0
	for _, b := range wi {
		if b == nil {
			continue
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		key, err := json.Marshal(b.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (wi *WorkflowIndex) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*wi = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected workflows object but found %v", tok)
	}

	index := WorkflowIndex{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected workflow name but found %v", tok)
		}
		b := &domain.WorkflowBucket{}
		if err := dec.Decode(b); err != nil {
			return err
		}
		b.Name = name
		if b.Tools == nil {
			b.Tools = []string{}
		}
		index = append(index, b)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*wi = index
	return nil
}

// Workflows converts back to the domain type.
func (wi WorkflowIndex) Workflows() domain.Workflows {
	return domain.Workflows(wi)
}
