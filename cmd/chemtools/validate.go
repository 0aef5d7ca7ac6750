package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vbagdi/ResearchCode/report"
	"github.com/vbagdi/ResearchCode/validate"
)

var (
	ReferenceFile = validate.DefaultReferencePath
	MetricsOutput = validate.DefaultMetricsPath
	ValidateK     = validate.DefaultK
)

func newValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:     "validate",
		Aliases: []string{"val"},
		Short:   "Validate discovered tools against a reference list",
		Long:    "Computes recall and precision@K of the discovered artifact against a curated reference list, prints a report and saves the metrics",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			artifact, err := report.Read(Output)
			if err != nil {
				if errors.Is(err, report.ErrMissingArtifact) {
					log.Fatalf("main: %s (run `chemtools discover` first)", err)
				}
				log.Fatalf("main: %s", err)
			}

			reference, err := validate.LoadReference(ReferenceFile)
			if err != nil {
				log.Fatalf("main: %s", err)
			}
			log.WithField("reference", len(reference)).WithField("discovered", len(artifact.Tools)).Info("Loaded data")

			metrics := validate.Calculate(artifact.Tools, reference, ValidateK)
			if !Quiet {
				validate.PrintReport(os.Stdout, metrics, artifact.Tools)
			}
			if err := validate.Save(MetricsOutput, metrics); err != nil {
				log.Fatalf("main: %s", err)
			}
			if !Quiet {
				fmt.Printf("\nSaved validation metrics to %v\n", MetricsOutput)
			}
		},
	}

	validateCmd.Flags().StringVarP(&Output, "input", "i", Output, "Discovered artifact path")
	validateCmd.Flags().StringVarP(&ReferenceFile, "reference", "r", ReferenceFile, "Reference list path (JSON, or YAML by extension)")
	validateCmd.Flags().StringVarP(&MetricsOutput, "metrics-output", "o", MetricsOutput, "Validation metrics output path")
	validateCmd.Flags().IntVarP(&ValidateK, "k", "k", ValidateK, "Rank cutoff for precision")

	return validateCmd
}
