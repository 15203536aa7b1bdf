package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Bornes de validation des mesures de la table de faits et des vendeurs.
var (
	discountMax = decimal.NewFromInt(1)
	ratingMin   = decimal.NewFromFloat(3.5)
	ratingMax   = decimal.NewFromInt(5)
)

// Sales représente un montant de vente (jamais négatif)
type Sales struct {
	value decimal.Decimal
}

// NewSales crée une nouvelle instance de Sales avec validation
func NewSales(value decimal.Decimal) (Sales, error) {
	if value.IsNegative() {
		return Sales{}, errors.New("sales amount cannot be negative")
	}
	return Sales{value: value}, nil
}

// Value retourne le montant
func (s Sales) Value() decimal.Decimal {
	return s.value
}

// Quantity représente une quantité vendue avec validation
type Quantity struct {
	value int
}

// NewQuantity crée une nouvelle instance de Quantity avec validation
func NewQuantity(value int) (Quantity, error) {
	if value < 0 {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{value: value}, nil
}

// Value retourne la valeur
func (q Quantity) Value() int {
	return q.value
}

// IsZero vérifie si la quantité est nulle
func (q Quantity) IsZero() bool {
	return q.value == 0
}

// Discount représente un taux de remise dans [0, 1]
type Discount struct {
	value decimal.Decimal
}

// NewDiscount crée une nouvelle instance de Discount avec validation
func NewDiscount(value decimal.Decimal) (Discount, error) {
	if value.IsNegative() || value.GreaterThan(discountMax) {
		return Discount{}, errors.New("discount must be within [0, 1]")
	}
	return Discount{value: value}, nil
}

// Value retourne le taux
func (d Discount) Value() decimal.Decimal {
	return d.value
}

// Rating représente la note d'un vendeur dans [3.5, 5.0]
type Rating struct {
	value decimal.Decimal
}

// NewRating crée une nouvelle instance de Rating avec validation
func NewRating(value decimal.Decimal) (Rating, error) {
	if value.LessThan(ratingMin) || value.GreaterThan(ratingMax) {
		return Rating{}, errors.New("rating must be within [3.5, 5.0]")
	}
	return Rating{value: value}, nil
}

// Value retourne la note
func (r Rating) Value() decimal.Decimal {
	return r.value
}
