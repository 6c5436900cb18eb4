package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configCmd(t *testing.T, yaml string) *cobra.Command {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cmd := &cobra.Command{}
	cmd.Flags().String("config", path, "")
	return cmd
}

func TestLoadConfigOnly(t *testing.T) {
	cmd := configCmd(t, `
app:
  data_dir: data
sources:
  greenhouse:
    enabled: true
    companies:
      - slug: acme
        name: Acme
`)
	cfg, err := loadConfigOnly(cmd)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.App.DataDir)
	require.Len(t, cfg.Sources.Greenhouse.Companies, 1)
}

func TestLoadConfigOnlyRefusesInvalid(t *testing.T) {
	// enabled source with no companies: run, serve and discover all refuse
	cmd := configCmd(t, `
sources:
  lever:
    enabled: true
`)
	_, err := loadConfigOnly(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadSeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
companies:
  - company_name: Acme
    careers_url: https://jobs.lever.co/acme
`), 0o644))

	seeds, err := loadSeeds(path)
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, "Acme", seeds[0].CompanyName)
}

func TestLoadSeedsEmptyIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.yml")
	require.NoError(t, os.WriteFile(path, []byte("companies: []\n"), 0o644))

	_, err := loadSeeds(path)
	require.Error(t, err)
}
