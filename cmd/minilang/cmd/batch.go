package cmd

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/agenthands/minilang/pkg/harness"
)

var batchConfig string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse every input in a manifest and report per-phase timings",
	Long: `batch reads a YAML manifest listing input files and an output
directory, parses each input, writes one JSON document per input and prints
a summary of the time spent parsing and serializing.

Inputs that fail to lex or parse are logged and skipped; the batch
continues with the next input.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchConfig, "config", "c", "batch.yaml", "batch manifest")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()

	cfg, err := harness.LoadConfig(fs, batchConfig)
	if err != nil {
		return err
	}

	runner := &harness.Runner{FS: fs, Log: logrus.StandardLogger()}
	timings, err := runner.Run(cfg)
	if err != nil {
		return err
	}

	summary, err := json.MarshalIndent(timings, "", "  ")
	if err != nil {
		return err
	}
	summary = append(summary, '\n')
	_, err = cmd.OutOrStdout().Write(summary)
	return err
}
