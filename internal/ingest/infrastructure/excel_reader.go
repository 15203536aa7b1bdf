package infrastructure

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"superstore/internal/ingest/domain"
)

// ExcelReader lit le classeur Superstore (.xlsx) et produit la séquence
// ordonnée de lignes plates consommée par le pipeline
type ExcelReader struct {
	path  string
	sheet string
}

// NewExcelReader crée un lecteur sur le fichier donné.
// sheet vide = première feuille du classeur.
func NewExcelReader(path string, sheet string) *ExcelReader {
	return &ExcelReader{path: path, sheet: sheet}
}

// Read charge toutes les lignes du classeur dans l'ordre du fichier.
// La première ligne est l'en-tête, les lignes entièrement vides sont ignorées.
func (r *ExcelReader) Read() ([]domain.SourceRecord, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("ouverture classeur %s: %w", r.path, err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("lecture feuille %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("feuille %q vide", sheet)
	}

	idx, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.SourceRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, buildRecord(row, idx))
	}
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
