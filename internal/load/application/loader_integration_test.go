package application

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	ingestdomain "superstore/internal/ingest/domain"
	"superstore/internal/testhelpers"
)

// ========================================
// TESTS D'INTÉGRATION - BASE RÉELLE
// ========================================
// Ces tests exigent un PostgreSQL accessible (variables DB_*),
// sinon ils sont skippés.

func scenarioRecords() []ingestdomain.SourceRecord {
	orderDate := time.Date(2017, time.November, 8, 0, 0, 0, 0, time.UTC)
	base := ingestdomain.SourceRecord{
		OrderDate:   &orderDate,
		ShipMode:    "Second Class",
		Country:     "United States",
		Category:    "Furniture",
		SubCategory: "Chairs",
		Sales:       decimal.NewFromFloat(100.50),
		Quantity:    1,
	}

	r1 := base
	r1.OrderID, r1.CustomerID, r1.CustomerName, r1.Region = "O1", "CUST-A", "Customer A", "West"
	r1.ProductID, r1.ProductName = "P1", "Product One"

	r2 := base
	r2.OrderID, r2.CustomerID, r2.CustomerName, r2.Region = "O1", "CUST-A", "Customer A", "West"
	r2.ProductID, r2.ProductName = "P2", "Product Two"

	r3 := base
	r3.OrderID, r3.CustomerID, r3.CustomerName, r3.Region = "O2", "CUST-B", "Customer B", "East"
	r3.ProductID, r3.ProductName = "P1", "Product One"

	return []ingestdomain.SourceRecord{r1, r2, r3}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// TestLoader_EndToEndScenario : le scénario source à 3 lignes produit
// 2 clients, 1 catégorie, 1 sous-catégorie, 2 produits, 2 commandes, 3 lignes
func TestLoader_EndToEndScenario(t *testing.T) {
	testhelpers.SkipIfNoDatabase(t)

	ctx := testhelpers.SetupTestContext(t)
	defer ctx.Cleanup()

	loader := NewLoader(ctx.DB, testhelpers.SilentLogger())
	report, err := loader.Load(ingestdomain.Extract(scenarioRecords()))
	require.NoError(t, err)

	require.Equal(t, 1, report.Categories)
	require.Equal(t, 1, report.Subcategories)
	require.Equal(t, 2, report.Customers)
	require.Equal(t, 2, report.Products)
	require.Equal(t, 2, report.Orders)
	require.Equal(t, 3, report.OrderLines)
	require.Equal(t, 0, report.ProductsSkipped)

	require.Equal(t, 1, countRows(t, ctx.DB, "categories"))
	require.Equal(t, 1, countRows(t, ctx.DB, "subcategories"))
	require.Equal(t, 2, countRows(t, ctx.DB, "customers"))
	require.Equal(t, 2, countRows(t, ctx.DB, "products"))
	require.Equal(t, 2, countRows(t, ctx.DB, "orders"))
	require.Equal(t, 3, countRows(t, ctx.DB, "order_lines"))
}

// TestLoader_IdempotentDimensions : deux rechargements complets du même
// jeu source laissent exactement les mêmes comptes dimensionnels
func TestLoader_IdempotentDimensions(t *testing.T) {
	testhelpers.SkipIfNoDatabase(t)

	ctx := testhelpers.SetupTestContext(t)
	defer ctx.Cleanup()

	loader := NewLoader(ctx.DB, testhelpers.SilentLogger())
	extraction := ingestdomain.Extract(scenarioRecords())

	_, err := loader.Load(extraction)
	require.NoError(t, err)

	firstCounts := map[string]int{}
	for _, table := range []string{"categories", "subcategories", "customers", "products", "orders", "order_lines"} {
		firstCounts[table] = countRows(t, ctx.DB, table)
	}

	// second run : le loader repart d'un état vidé, mêmes comptes à l'arrivée
	second := NewLoader(ctx.DB, testhelpers.SilentLogger())
	_, err = second.Load(extraction)
	require.NoError(t, err)

	for table, want := range firstCounts {
		require.Equal(t, want, countRows(t, ctx.DB, table), "table %s", table)
	}
}

// TestLoader_FKResolutionCompleteness : tout produit inséré référence une
// catégorie et une sous-catégorie existantes
func TestLoader_FKResolutionCompleteness(t *testing.T) {
	testhelpers.SkipIfNoDatabase(t)

	ctx := testhelpers.SetupTestContext(t)
	defer ctx.Cleanup()

	loader := NewLoader(ctx.DB, testhelpers.SilentLogger())
	_, err := loader.Load(ingestdomain.Extract(scenarioRecords()))
	require.NoError(t, err)

	var orphans int
	require.NoError(t, ctx.DB.QueryRow(`
		SELECT COUNT(*)
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.category_id
		LEFT JOIN subcategories s ON p.subcategory_id = s.subcategory_id
		WHERE c.category_id IS NULL OR s.subcategory_id IS NULL
	`).Scan(&orphans))
	require.Zero(t, orphans)
}
