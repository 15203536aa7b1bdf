package infrastructure

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"superstore/internal/ingest/domain"
	shareddomain "superstore/internal/shared/domain"
)

// Formats de date rencontrés dans les exports Superstore (Excel et CSV)
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01-02-06",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
}

// headerIndex construit la table colonne -> position à partir de la ligne
// d'en-tête, en trimant chaque nom (les fichiers réels contiennent des
// espaces parasites autour des en-têtes).
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range domain.RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("colonne requise absente de l'en-tête: %q", col)
		}
	}
	return idx, nil
}

// cell retourne la valeur trimée de la colonne demandée, "" si absente
func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseDate tente les formats textuels connus puis le numéro de série
// Excel (cellule de date en format General, ex. "42682"), nil si la
// valeur est vide ou illisible
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}
	return nil
}

// parseDecimal convertit une mesure numérique, zéro si vide ou illisible
// (même politique que la source : les mesures manquantes valent 0)
func parseDecimal(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseInt convertit une quantité entière, zéro si vide ou illisible
func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	// certaines sources exportent les quantités en "3.0"
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

// buildRecord assemble un SourceRecord depuis une ligne brute.
// Les mesures passent par les value objects partagés : une valeur hors
// invariant (vente négative, remise hors [0,1]) est ramenée à zéro
// plutôt que de faire échouer le batch.
func buildRecord(row []string, idx map[string]int) domain.SourceRecord {
	rec := domain.SourceRecord{
		OrderID:      cell(row, idx, domain.ColOrderID),
		OrderDate:    parseDate(cell(row, idx, domain.ColOrderDate)),
		ShipDate:     parseDate(cell(row, idx, domain.ColShipDate)),
		ShipMode:     cell(row, idx, domain.ColShipMode),
		CustomerID:   cell(row, idx, domain.ColCustomerID),
		CustomerName: cell(row, idx, domain.ColCustomerName),
		Segment:      cell(row, idx, domain.ColSegment),
		Country:      cell(row, idx, domain.ColCountry),
		City:         cell(row, idx, domain.ColCity),
		State:        cell(row, idx, domain.ColState),
		PostalCode:   cell(row, idx, domain.ColPostalCode),
		Region:       cell(row, idx, domain.ColRegion),
		ProductID:    cell(row, idx, domain.ColProductID),
		Category:     cell(row, idx, domain.ColCategory),
		SubCategory:  cell(row, idx, domain.ColSubCategory),
		ProductName:  cell(row, idx, domain.ColProductName),
		Profit:       parseDecimal(cell(row, idx, domain.ColProfit)),
	}

	if sales, err := shareddomain.NewSales(parseDecimal(cell(row, idx, domain.ColSales))); err == nil {
		rec.Sales = sales.Value()
	} else {
		rec.Sales = decimal.Zero
	}

	if qty, err := shareddomain.NewQuantity(parseInt(cell(row, idx, domain.ColQuantity))); err == nil {
		rec.Quantity = qty.Value()
	}

	if disc, err := shareddomain.NewDiscount(parseDecimal(cell(row, idx, domain.ColDiscount))); err == nil {
		rec.Discount = disc.Value()
	} else {
		rec.Discount = decimal.Zero
	}

	return rec
}
