package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// MODÈLES DE DONNÉES - Schéma normalisé Superstore
// ============================================================================

// Category - Catégorie de produit (dimension)
type Category struct {
	ID   int    `json:"category_id"`
	Name string `json:"category_name"`
}

// Subcategory - Sous-catégorie, rattachée à une catégorie parente
type Subcategory struct {
	ID         int    `json:"subcategory_id"`
	CategoryID int    `json:"category_id"`
	Name       string `json:"subcategory_name"`
}

// Customer - Client, identifié par sa clé naturelle source
type Customer struct {
	ID         string  `json:"customer_id"`
	Name       string  `json:"customer_name"`
	Segment    *string `json:"segment,omitempty"`
	Country    string  `json:"country,omitempty"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Region     *string `json:"region,omitempty"`
}

// Product - Produit, rattaché à une catégorie et une sous-catégorie
type Product struct {
	ID            string `json:"product_id"`
	CategoryID    int    `json:"category_id"`
	SubcategoryID int    `json:"subcategory_id"`
	Name          string `json:"product_name"`
}

// Order - Commande (header)
type Order struct {
	ID         string     `json:"order_id"`
	OrderDate  *time.Time `json:"order_date,omitempty"`
	ShipDate   *time.Time `json:"ship_date,omitempty"`
	ShipMode   *string    `json:"ship_mode,omitempty"`
	CustomerID string     `json:"customer_id"`
}

// OrderLine - Ligne de vente (table de faits, append-only)
type OrderLine struct {
	ID        int64           `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	SellerID  *string         `json:"seller_id,omitempty"`
	Sales     decimal.Decimal `json:"sales"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
	Profit    decimal.Decimal `json:"profit"`
}

// Seller - Vendeur tiers, généré par le pipeline (jamais issu de la source)
type Seller struct {
	ID       string          `json:"seller_id"`
	Name     string          `json:"seller_name"`
	Email    string          `json:"seller_email"`
	Phone    string          `json:"seller_phone"`
	Region   string          `json:"seller_region"`
	Rating   decimal.Decimal `json:"seller_rating"`
	JoinDate time.Time       `json:"join_date"`
}
