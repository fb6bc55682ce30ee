package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/minilang/pkg/compiler"
)

var parseOutput string

var parseCmd = &cobra.Command{
	Use:   "parse <source file>",
	Short: "Parse one source file and emit its syntax-tree document",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "write the document to a file instead of stdout")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	doc, err := compiler.Generate(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	doc = append(doc, '\n')

	if parseOutput == "" {
		_, err = cmd.OutOrStdout().Write(doc)
		return err
	}
	return os.WriteFile(parseOutput, doc, 0o644)
}
