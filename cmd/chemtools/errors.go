package main

import (
	"fmt"
	"strings"

	"github.com/vbagdi/ResearchCode/workflow"
)

type errNoSuchTool string

func (e errNoSuchTool) Error() string {
	return fmt.Sprintf("no tool named %q in the artifact", string(e))
}

type errNoSuchWorkflow string

func (e errNoSuchWorkflow) Error() string {
	return fmt.Sprintf("unknown workflow %q, expected one of: %v", string(e), strings.Join(workflow.Names(), ", "))
}
