package visitors

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// WriteCSV encodes records under the fixed header. Nil counts are empty fields.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if len(records) == 0 {
		if err := enc.EncodeHeader(Record{}); err != nil {
			return eris.Wrap(err, "visitors: encode header")
		}
	} else if err := enc.Encode(records); err != nil {
		return eris.Wrap(err, "visitors: encode records")
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "visitors: flush csv")
}

// WriteFile writes records to path through a temporary file in the same
// directory, so path is either fully written or left as it was.
func WriteFile(path string, records []Record) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "visitors: create dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return eris.Wrapf(err, "visitors: create temp file in %s", dir)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = WriteCSV(tmp, records); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return eris.Wrapf(err, "visitors: close %s", tmp.Name())
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return eris.Wrapf(err, "visitors: chmod %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "visitors: rename to %s", path)
	}
	return nil
}

// ReadCSV decodes a cleaned table. The header must be the fixed nine columns.
func ReadCSV(r io.Reader) ([]Record, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err == io.EOF {
		return nil, eris.Wrap(ErrInputShape, "visitors: cleaned table is empty")
	}
	if err != nil {
		return nil, eris.Wrap(err, "visitors: read cleaned header")
	}

	header := dec.Header()
	if strings.Join(header, ",") != strings.Join(Columns, ",") {
		return nil, eris.Wrapf(ErrInputShape, "visitors: cleaned header is %v, want %v", header, Columns)
	}

	var out []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrap(err, "visitors: decode cleaned row")
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadFile opens and decodes a cleaned table.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "visitors: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	records, err := ReadCSV(f)
	if err != nil {
		return nil, eris.Wrapf(err, "visitors: read %s", path)
	}
	return records, nil
}
