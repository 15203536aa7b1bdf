package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Noms de colonnes attendus dans le fichier source Superstore.
// Les en-têtes sont comparés après trim (les exports contiennent des espaces parasites).
const (
	ColOrderID      = "Order ID"
	ColOrderDate    = "Order Date"
	ColShipDate     = "Ship Date"
	ColShipMode     = "Ship Mode"
	ColCustomerID   = "Customer ID"
	ColCustomerName = "Customer Name"
	ColSegment      = "Segment"
	ColCountry      = "Country"
	ColCity         = "City"
	ColState        = "State"
	ColPostalCode   = "Postal Code"
	ColRegion       = "Region"
	ColProductID    = "Product ID"
	ColCategory     = "Category"
	ColSubCategory  = "Sub-Category"
	ColProductName  = "Product Name"
	ColSales        = "Sales"
	ColQuantity     = "Quantity"
	ColDiscount     = "Discount"
	ColProfit       = "Profit"
)

// RequiredColumns liste les colonnes sans lesquelles une ligne est inexploitable
var RequiredColumns = []string{ColOrderID, ColCustomerID, ColProductID}

// SourceRecord est une ligne plate dénormalisée du fichier source :
// une ligne par article vendu, avec les attributs client / produit /
// commande répétés. Les champs énumérés restent bruts à ce stade,
// la normalisation intervient à l'extraction.
type SourceRecord struct {
	OrderID      string
	OrderDate    *time.Time
	ShipDate     *time.Time
	ShipMode     string
	CustomerID   string
	CustomerName string
	Segment      string
	Country      string
	City         string
	State        string
	PostalCode   string
	Region       string
	ProductID    string
	Category     string
	SubCategory  string
	ProductName  string
	Sales        decimal.Decimal
	Quantity     int
	Discount     decimal.Decimal
	Profit       decimal.Decimal
}
