package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/onrik/logrus/filename"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	DBFile  = "chemtools.bolt"
	Quiet   bool
	Verbose bool

	MemoryProfiler bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chemtools",
		Short: "Discover and rank open-source chemistry software",
		Long:  "Searches GitHub and PyPI for Python cheminformatics tools, scores and categorizes them, and validates the ranking against a reference list",
	}

	rootCmd.PersistentFlags().BoolVarP(&Quiet, "quiet", "q", Quiet, "Activate quiet log output")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", Verbose, "Activate verbose log output")
	rootCmd.PersistentFlags().StringVarP(&DBFile, "db", "b", DBFile, "Path to BoltDB file holding run history and the package index cache")

	rootCmd.AddCommand(
		newDiscoverCmd(),
		newValidateCmd(),
		newRunsCmd(),
		newShowCmd(),
		newServiceCmd(),
	)

	return rootCmd
}

func main() {
	if err := NewConfig().Do(); err != nil {
		log.Fatalf("main: %s", err)
	}

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func initLogging() {
	level := log.InfoLevel
	if Verbose {
		log.AddHook(filename.NewHook())
		level = log.DebugLevel
	}
	if Quiet {
		level = log.ErrorLevel
	}
	log.SetLevel(level)
}

func emitJSON(x interface{}) error {
	bs, err := json.MarshalIndent(x, "", "    ")
	if err != nil {
		return err
	}
	fmt.Printf("%v\n", string(bs))
	return nil
}

// signalContext returns a context which is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigCh:
			log.WithField("sig", s).Info("Received signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
