package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ExtractZIP extracts every tabular file (csv, xlsx, shapefile parts) from a ZIP archive
// into destDir. Returns the extracted file paths in archive order.
func ExtractZIP(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	var extracted []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !wantedEntry(f.Name) {
			continue
		}
		path, err := extractZIPEntry(f, destDir)
		if err != nil {
			return extracted, err
		}
		extracted = append(extracted, path)
	}

	if len(extracted) == 0 {
		return nil, eris.Errorf("zip: no data files in %s", zipPath)
	}
	return extracted, nil
}

var wantedExts = map[string]bool{
	".csv": true, ".xlsx": true,
	".shp": true, ".shx": true, ".dbf": true, ".prj": true, ".cpg": true,
}

func wantedEntry(name string) bool {
	return wantedExts[strings.ToLower(filepath.Ext(name))]
}

// extractZIPEntry extracts a single zip.File into destDir, flattening directories.
func extractZIPEntry(f *zip.File, destDir string) (string, error) {
	base := filepath.Base(f.Name)
	if base == "." || base == ".." || base == string(os.PathSeparator) {
		return "", eris.Errorf("zip: illegal path %q", f.Name)
	}
	destPath := filepath.Join(destDir, base)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", eris.Wrap(err, "zip: create directory")
	}

	rc, err := f.Open()
	if err != nil {
		return "", eris.Wrap(err, "zip: open entry")
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: create file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return "", eris.Wrap(err, "zip: write file")
	}

	return destPath, nil
}
