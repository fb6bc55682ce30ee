// Package harness drives the front end over a batch of input files: it
// reads each source, runs the pipeline, writes one document per input and
// accumulates per-phase timings.
package harness

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/minilang/pkg/compiler/emitter"
	"github.com/agenthands/minilang/pkg/compiler/lexer"
	"github.com/agenthands/minilang/pkg/compiler/parser"
)

// Config describes one batch run.
type Config struct {
	Inputs    []string `yaml:"inputs"`
	OutputDir string   `yaml:"output_dir"`
}

// LoadConfig reads and validates a YAML batch manifest.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(cfg.Inputs) == 0 {
		return nil, fmt.Errorf("config %s lists no inputs", path)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	return &cfg, nil
}

// Timings accumulates the parse and marshal phases across a run, in
// milliseconds.
type Timings struct {
	Parse   float64 `json:"parse"`
	Marshal float64 `json:"marshal"`
}

// Runner executes batch runs against an abstract filesystem so tests can
// use an in-memory one.
type Runner struct {
	FS  afero.Fs
	Log logrus.FieldLogger
}

// Run processes every input in cfg. A file that fails to lex or parse is
// logged and skipped; the batch continues with the next input. The returned
// error covers harness failures only (unreadable input, unwritable output).
func (r *Runner) Run(cfg *Config) (*Timings, error) {
	if err := r.FS.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	timings := &Timings{}
	for _, input := range cfg.Inputs {
		src, err := afero.ReadFile(r.FS, input)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", input, err)
		}

		start := time.Now()
		tokens, err := lexer.Tokenize(src)
		if err != nil {
			r.Log.WithField("input", input).WithError(err).Warn("lex failed, skipping")
			continue
		}
		prog, err := parser.Parse(tokens)
		if err != nil {
			r.Log.WithField("input", input).WithError(err).Warn("parse failed, skipping")
			continue
		}
		endParse := time.Now()

		doc, err := emitter.Marshal(prog)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", input, err)
		}
		end := time.Now()

		timings.Parse += float64(endParse.Sub(start).Nanoseconds()) / 1e6
		timings.Marshal += float64(end.Sub(endParse).Nanoseconds()) / 1e6

		out := r.outputPath(cfg.OutputDir, input)
		if err := afero.WriteFile(r.FS, out, append(doc, '\n'), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", out, err)
		}
		r.Log.WithFields(logrus.Fields{
			"input":  input,
			"output": out,
			"tokens": len(tokens),
		}).Info("parsed")
	}
	return timings, nil
}

// outputPath maps an input file to <outputDir>/<base>.json.
func (r *Runner) outputPath(dir, input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+".json")
}
