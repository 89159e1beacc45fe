package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfilesCoverAllProcessorChoices(t *testing.T) {
	table, err := LoadProfileTable("")
	require.NoError(t, err)

	cpu, err := table.Lookup("CPU")
	require.NoError(t, err)
	assert.Equal(t, "libx264", cpu.Codec)
	assert.Equal(t, []string{"-preset", "medium", "-crf", "18"}, cpu.Params)

	nvidia, err := table.Lookup("GPU (Nvidia)")
	require.NoError(t, err)
	assert.Equal(t, "h264_nvenc", nvidia.Codec)
	assert.Equal(t, []string{"-preset", "p4", "-tune", "hq", "-b:v", "5M"}, nvidia.Params)

	amd, err := table.Lookup("GPU (AMD)")
	require.NoError(t, err)
	assert.Equal(t, "h264_amf", amd.Codec)
	assert.Equal(t, []string{"-quality", "quality"}, amd.Params)
}

func TestLookupUnknownProcessorFailsFast(t *testing.T) {
	table, err := LoadProfileTable("")
	require.NoError(t, err)

	_, err = table.Lookup("TPU")
	assert.ErrorIs(t, err, ErrUnknownProcessor)
}

func TestLoadProfileTableMissingFileUsesDefaults(t *testing.T) {
	table, err := LoadProfileTable(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cpu, err := table.Lookup("CPU")
	require.NoError(t, err)
	assert.Equal(t, "libx264", cpu.Codec)
}

func TestLoadProfileTableFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `
CPU:
  codec: libx265
  params: ["-preset", "slow", "-crf", "22"]
"GPU (Intel)":
  codec: h264_qsv
  params: ["-preset", "fast"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := LoadProfileTable(path)
	require.NoError(t, err)

	cpu, err := table.Lookup("CPU")
	require.NoError(t, err)
	assert.Equal(t, "libx265", cpu.Codec)

	intel, err := table.Lookup("GPU (Intel)")
	require.NoError(t, err)
	assert.Equal(t, "h264_qsv", intel.Codec)

	// Untouched defaults survive the merge.
	nvidia, err := table.Lookup("GPU (Nvidia)")
	require.NoError(t, err)
	assert.Equal(t, "h264_nvenc", nvidia.Codec)
}

func TestLoadProfileTableRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0644))

	_, err := LoadProfileTable(path)
	assert.Error(t, err)
}
