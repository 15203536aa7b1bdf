package domain

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"superstore/database"
	shareddomain "superstore/internal/shared/domain"
)

// RosterSeed : graine fixe du générateur, le roster est identique d'un run à l'autre
const RosterSeed int64 = 42

// Catalogue fixe des vendeurs tiers. Le roster est généré une fois à
// l'initialisation du pipeline, jamais dérivé des lignes source.
var sellerNames = []string{
	"Tech Solutions Inc", "Office World", "Furniture Plus",
	"Digital Mart", "Supply Chain Co", "MegaStore LLC",
	"Prime Sellers", "Quality Goods", "Best Products",
	"Elite Traders", "Global Supplies", "Smart Commerce",
	"Express Sellers", "Top Vendors", "Premier Deals",
	"Reliable Stores", "Fast Shipping Co", "Value Mart",
	"Super Sellers", "Trusted Goods",
}

// RosterSize retourne la taille du catalogue de vendeurs
func RosterSize() int {
	return len(sellerNames)
}

// NewRoster génère le catalogue complet de vendeurs à partir du générateur
// fourni. Région tirée uniformément dans le domaine canonique, note
// uniforme dans [3.5, 5.0] arrondie à 2 décimales, date d'adhésion
// uniforme entre 365 et 1825 jours avant now.
func NewRoster(rng *rand.Rand, now time.Time) ([]database.Seller, error) {
	regions := shareddomain.RegionDomain.Values()
	window, err := NewJoinWindow(365, 1825)
	if err != nil {
		return nil, err
	}

	sellers := make([]database.Seller, 0, len(sellerNames))
	for i, name := range sellerNames {
		rating, err := shareddomain.NewRating(randomRating(rng))
		if err != nil {
			return nil, fmt.Errorf("génération note vendeur %q: %w", name, err)
		}

		sellers = append(sellers, database.Seller{
			ID:       fmt.Sprintf("SELL-%04d", i+1),
			Name:     name,
			Email:    sellerEmail(name),
			Phone:    fmt.Sprintf("+1-555-%d", 1000+rng.Intn(9000)),
			Region:   regions[rng.Intn(len(regions))],
			Rating:   rating.Value(),
			JoinDate: window.Pick(rng, now),
		})
	}
	return sellers, nil
}

// randomRating tire une note uniforme dans [3.5, 5.0] arrondie à 2 décimales
func randomRating(rng *rand.Rand) decimal.Decimal {
	raw := 3.5 + rng.Float64()*1.5
	return decimal.NewFromFloat(math.Round(raw*100) / 100)
}

// sellerEmail dérive l'adresse de contact du nom commercial
func sellerEmail(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@sellers.com"
}
