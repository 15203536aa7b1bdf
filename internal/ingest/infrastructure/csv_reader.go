package infrastructure

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"superstore/internal/ingest/domain"
)

// CSVReader lit un export CSV du jeu Superstore avec le même contrat
// que le lecteur Excel : en-tête en première ligne, ordre préservé
type CSVReader struct {
	path string
}

// NewCSVReader crée un lecteur sur le fichier donné
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// Read charge toutes les lignes du fichier dans l'ordre.
// Les lignes courtes sont tolérées (colonnes manquantes = valeurs vides).
func (r *CSVReader) Read() ([]domain.SourceRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("ouverture fichier %s: %w", r.path, err)
	}
	defer f.Close()

	return r.readFrom(f)
}

func (r *CSVReader) readFrom(src io.Reader) ([]domain.SourceRecord, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("fichier CSV vide")
		}
		return nil, fmt.Errorf("lecture en-tête CSV: %w", err)
	}

	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var records []domain.SourceRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lecture ligne CSV: %w", err)
		}
		records = append(records, buildRecord(row, idx))
	}
	return records, nil
}
