package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleRecord(orderID, customerID, productID string) SourceRecord {
	return SourceRecord{
		OrderID:      orderID,
		OrderDate:    date(2017, time.November, 8),
		ShipDate:     date(2017, time.November, 11),
		ShipMode:     "Second Class",
		CustomerID:   customerID,
		CustomerName: "Claire Gute",
		Segment:      "Consumer",
		Country:      "United States",
		City:         "Henderson",
		State:        "Kentucky",
		PostalCode:   "42420",
		Region:       "South",
		ProductID:    productID,
		Category:     "Furniture",
		SubCategory:  "Bookcases",
		ProductName:  "Bush Somerset Collection Bookcase",
		Sales:        decimal.NewFromFloat(261.96),
		Quantity:     2,
		Discount:     decimal.Zero,
		Profit:       decimal.NewFromFloat(41.91),
	}
}

// TestExtract_FirstOccurrenceWins : pour une même clé naturelle, la première
// occurrence fixe les attributs, les doublons conflictuels sont ignorés
func TestExtract_FirstOccurrenceWins(t *testing.T) {
	first := sampleRecord("US-1", "CG-1", "FUR-1")
	duplicate := sampleRecord("US-1", "CG-1", "FUR-1")
	duplicate.CustomerName = "Someone Else"
	duplicate.City = "Los Angeles"
	duplicate.ProductName = "Different Name"

	ex := Extract([]SourceRecord{first, duplicate})

	require.Len(t, ex.Customers, 1)
	require.Equal(t, "Claire Gute", ex.Customers[0].Name)
	require.Equal(t, "Henderson", ex.Customers[0].City)

	require.Len(t, ex.Products, 1)
	require.Equal(t, "Bush Somerset Collection Bookcase", ex.Products[0].Name)

	require.Len(t, ex.Orders, 1)

	// la table de faits n'est jamais dédupliquée
	require.Len(t, ex.Lines, 2)
}

// TestExtract_Projections vérifie les projections sur le scénario à 3 lignes
func TestExtract_Projections(t *testing.T) {
	r1 := sampleRecord("O1", "CUST-A", "P1")
	r1.Region = "West"
	r1.SubCategory = "Chairs"
	r2 := sampleRecord("O1", "CUST-A", "P2")
	r2.Region = "West"
	r2.SubCategory = "Chairs"
	r3 := sampleRecord("O2", "CUST-B", "P1")
	r3.Region = "East"
	r3.SubCategory = "Chairs"

	ex := Extract([]SourceRecord{r1, r2, r3})

	require.Equal(t, []string{"Furniture"}, ex.Categories)
	require.Equal(t, []SubcategoryPair{{Category: "Furniture", Name: "Chairs"}}, ex.Pairs)
	require.Len(t, ex.Customers, 2)
	require.Len(t, ex.Products, 2)
	require.Len(t, ex.Orders, 2)
	require.Len(t, ex.Lines, 3)
}

// TestExtract_EnumNormalization : les valeurs énumérées dérivées de la source
// sont projetées sur le domaine canonique, les échecs comptés et mis à NULL
func TestExtract_EnumNormalization(t *testing.T) {
	rec := sampleRecord("O1", "C1", "P1")
	rec.Region = " south "
	rec.Segment = "corporate"
	rec.ShipMode = "Teleportation"

	ex := Extract([]SourceRecord{rec})

	require.NotNil(t, ex.Customers[0].Region)
	require.Equal(t, "South", *ex.Customers[0].Region)
	require.NotNil(t, ex.Customers[0].Segment)
	require.Equal(t, "Corporate", *ex.Customers[0].Segment)
	require.Nil(t, ex.Orders[0].ShipMode)
	require.Equal(t, 1, ex.UnmappedEnums)
}

// TestExtract_OrderPreserved : l'ordre de première apparition est conservé
func TestExtract_OrderPreserved(t *testing.T) {
	a := sampleRecord("O1", "C1", "P1")
	a.Category = "Technology"
	a.SubCategory = "Phones"
	b := sampleRecord("O2", "C2", "P2")
	b.Category = "Furniture"
	b.SubCategory = "Chairs"
	c := sampleRecord("O3", "C3", "P3")
	c.Category = "Technology"
	c.SubCategory = "Phones"

	ex := Extract([]SourceRecord{a, b, c})
	require.Equal(t, []string{"Technology", "Furniture"}, ex.Categories)
	require.Equal(t, "C1", ex.Customers[0].ID)
	require.Equal(t, "C2", ex.Customers[1].ID)
}

// TestExtract_BlankKeys : les identifiants vides ne produisent pas de candidats
func TestExtract_BlankKeys(t *testing.T) {
	rec := sampleRecord("", "", "")
	rec.Category = ""
	rec.SubCategory = ""

	ex := Extract([]SourceRecord{rec})
	require.Empty(t, ex.Categories)
	require.Empty(t, ex.Pairs)
	require.Empty(t, ex.Customers)
	require.Empty(t, ex.Products)
	require.Empty(t, ex.Orders)
	// la ligne de faits est conservée, le loader la comptera comme ignorée
	require.Len(t, ex.Lines, 1)
}
