package harness_test

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/minilang/pkg/harness"
)

func newRunner(fs afero.Fs) *harness.Runner {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &harness.Runner{FS: fs, Log: log}
}

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "batch.yaml", []byte(
		"inputs:\n  - example/a.tst\n  - example/b.tst\noutput_dir: out\n"), 0o644))

	cfg, err := harness.LoadConfig(fs, "batch.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"example/a.tst", "example/b.tst"}, cfg.Inputs)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadConfigDefaultsOutputDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "batch.yaml", []byte("inputs: [a.tst]\n"), 0o644))

	cfg, err := harness.LoadConfig(fs, "batch.yaml")
	require.NoError(t, err)
	assert.Equal(t, "output", cfg.OutputDir)
}

func TestLoadConfigRejectsEmptyInputs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "batch.yaml", []byte("output_dir: out\n"), 0o644))

	_, err := harness.LoadConfig(fs, "batch.yaml")
	require.Error(t, err)
}

func TestRunWritesDocuments(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "example/a.tst", []byte("var x; x = 1 + 2"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "example/b.tst", []byte("if (x > 1) { y = 2 }"), 0o644))

	timings, err := newRunner(fs).Run(&harness.Config{
		Inputs:    []string{"example/a.tst", "example/b.tst"},
		OutputDir: "out",
	})
	require.NoError(t, err)
	require.NotNil(t, timings)

	for _, name := range []string{"out/a.json", "out/b.json"} {
		data, err := afero.ReadFile(fs, name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), `"type": 0`)
	}
	assert.GreaterOrEqual(t, timings.Parse, 0.0)
	assert.GreaterOrEqual(t, timings.Marshal, 0.0)
}

func TestRunSkipsFailingInput(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "good.tst", []byte("x = 1"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "bad.tst", []byte("if (x) { y = 1 }"), 0o644))

	_, err := newRunner(fs).Run(&harness.Config{
		Inputs:    []string{"bad.tst", "good.tst"},
		OutputDir: "out",
	})
	require.NoError(t, err, "a parse failure does not abort the batch")

	_, err = fs.Stat("out/good.json")
	require.NoError(t, err)
	_, err = fs.Stat("out/bad.json")
	require.Error(t, err, "no partial output for the failing input")
}

func TestRunMissingInputIsFatal(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := newRunner(fs).Run(&harness.Config{
		Inputs:    []string{"nope.tst"},
		OutputDir: "out",
	})
	require.Error(t, err)
}
