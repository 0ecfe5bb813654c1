package unitstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/JuniperDocgen/core/errors"
	"github.com/FocuswithJustin/JuniperDocgen/internal/logging"
	"github.com/FocuswithJustin/JuniperDocgen/internal/validation"
)

// Fixture is the top level of a fixture file.
type Fixture struct {
	Units []Record `json:"units" yaml:"units"`
}

// Fixture file formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatForPath returns the fixture format implied by a file extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: fixture format of %s", errors.ErrUnsupported, path)
}

// DecodeFixture reads a fixture in the given format. Unknown fields are
// rejected.
func DecodeFixture(r io.Reader, format string) (*Fixture, error) {
	var fx Fixture
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&fx); err != nil && err != io.EOF {
			return nil, errors.NewParse("YAML", "", err.Error())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fx); err != nil {
			return nil, errors.NewParse("JSON", "", err.Error())
		}
	default:
		return nil, fmt.Errorf("%w: fixture format %q", errors.ErrUnsupported, format)
	}
	return &fx, nil
}

// Import stores every record of a fixture in one transaction. It returns
// the number of units added or changed.
func (s *Store) Import(ctx context.Context, fx *Fixture) (int, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	changed := 0
	for i := range fx.Units {
		ok, err := put(ctx, tx, &fx.Units[i])
		if err != nil {
			return 0, fmt.Errorf("unit %d (%s): %w", i, fx.Units[i].Request(), err)
		}
		if ok {
			changed++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return changed, nil
}

// ImportFile decodes a fixture file and imports it.
func (s *Store) ImportFile(ctx context.Context, path string) (int, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return 0, err
	}
	data, _, err := validation.ReadFile(path)
	if err != nil {
		return 0, errors.NewIO("read", path, err)
	}

	fx, err := DecodeFixture(bytes.NewReader(data), format)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		logging.ImportError(ctx, path, err)
		return 0, err
	}

	n, err := s.Import(ctx, fx)
	if err != nil {
		logging.ImportError(ctx, path, err)
		return 0, err
	}
	logging.UnitsImported(ctx, path, n, "total", len(fx.Units))
	return n, nil
}
