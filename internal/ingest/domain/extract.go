package domain

import (
	"strings"

	"superstore/database"
	shareddomain "superstore/internal/shared/domain"
)

// SubcategoryPair est le couple (catégorie, sous-catégorie) observé dans la source
type SubcategoryPair struct {
	Category string
	Name     string
}

// ProductCandidate est un produit extrait dont les clés étrangères
// (catégorie, sous-catégorie) restent à résoudre par le loader
type ProductCandidate struct {
	ID          string
	Category    string
	SubCategory string
	Name        string
}

// Extraction regroupe les projections dédupliquées du jeu source.
// L'ordre des slices suit l'ordre de première apparition dans la source :
// pour une même clé naturelle, la première occurrence gagne, les doublons
// ultérieurs sont ignorés silencieusement (jamais fusionnés).
type Extraction struct {
	Categories []string
	Pairs      []SubcategoryPair
	Customers  []database.Customer
	Products   []ProductCandidate
	Orders     []database.Order
	Lines      []database.OrderLine

	// UnmappedEnums compte les valeurs énumérées source hors domaine
	// canonique, stockées en NULL (auditables sans interrompre le batch)
	UnmappedEnums int
}

// Extract projette la séquence source plate en candidats relationnels.
// Transformation pure : aucune interaction avec le store.
func Extract(records []SourceRecord) Extraction {
	ex := Extraction{}

	seenCategories := make(map[string]bool)
	seenPairs := make(map[SubcategoryPair]bool)
	seenCustomers := make(map[string]bool)
	seenProducts := make(map[string]bool)
	seenOrders := make(map[string]bool)

	for _, rec := range records {
		category := strings.TrimSpace(rec.Category)
		subCategory := strings.TrimSpace(rec.SubCategory)

		if category != "" && !seenCategories[category] {
			seenCategories[category] = true
			ex.Categories = append(ex.Categories, category)
		}

		if category != "" && subCategory != "" {
			pair := SubcategoryPair{Category: category, Name: subCategory}
			if !seenPairs[pair] {
				seenPairs[pair] = true
				ex.Pairs = append(ex.Pairs, pair)
			}
		}

		if id := strings.TrimSpace(rec.CustomerID); id != "" && !seenCustomers[id] {
			seenCustomers[id] = true
			ex.Customers = append(ex.Customers, database.Customer{
				ID:         id,
				Name:       strings.TrimSpace(rec.CustomerName),
				Segment:    ex.normalize(rec.Segment, shareddomain.SegmentDomain),
				Country:    strings.TrimSpace(rec.Country),
				City:       strings.TrimSpace(rec.City),
				State:      strings.TrimSpace(rec.State),
				PostalCode: strings.TrimSpace(rec.PostalCode),
				Region:     ex.normalize(rec.Region, shareddomain.RegionDomain),
			})
		}

		if id := strings.TrimSpace(rec.ProductID); id != "" && !seenProducts[id] {
			seenProducts[id] = true
			ex.Products = append(ex.Products, ProductCandidate{
				ID:          id,
				Category:    category,
				SubCategory: subCategory,
				Name:        strings.TrimSpace(rec.ProductName),
			})
		}

		if id := strings.TrimSpace(rec.OrderID); id != "" && !seenOrders[id] {
			seenOrders[id] = true
			ex.Orders = append(ex.Orders, database.Order{
				ID:         id,
				OrderDate:  rec.OrderDate,
				ShipDate:   rec.ShipDate,
				ShipMode:   ex.normalize(rec.ShipMode, shareddomain.ShipModeDomain),
				CustomerID: strings.TrimSpace(rec.CustomerID),
			})
		}

		// La table de faits n'est jamais dédupliquée : une ligne source = une ligne insérée
		ex.Lines = append(ex.Lines, database.OrderLine{
			OrderID:   strings.TrimSpace(rec.OrderID),
			ProductID: strings.TrimSpace(rec.ProductID),
			Sales:     rec.Sales,
			Quantity:  rec.Quantity,
			Discount:  rec.Discount,
			Profit:    rec.Profit,
		})
	}

	return ex
}

// normalize applique le domaine canonique en comptant les valeurs non mappées
func (ex *Extraction) normalize(raw string, d shareddomain.Domain) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	v, ok := d.Normalize(raw)
	if !ok {
		ex.UnmappedEnums++
		return nil
	}
	return &v
}
