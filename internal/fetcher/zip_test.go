package fetcher

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestZIP(t *testing.T, files map[string]string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return zipPath
}

func TestExtractZIP_DataFilesOnly(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{
		"stats/visitors.csv": "a,b",
		"readme.txt":         "ignore me",
		"gadm/JPN_1.shp":     "shp",
		"gadm/JPN_1.dbf":     "dbf",
	})

	destDir := t.TempDir()
	extracted, err := ExtractZIP(zipPath, destDir)
	require.NoError(t, err)
	assert.Len(t, extracted, 3)

	data, err := os.ReadFile(filepath.Join(destDir, "visitors.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(data))

	_, err = os.Stat(filepath.Join(destDir, "readme.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractZIP_NoDataFiles(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{"notes.txt": "x"})

	_, err := ExtractZIP(zipPath, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data files")
}

func TestExtractZIP_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := ExtractZIP(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zip: open archive")
}
