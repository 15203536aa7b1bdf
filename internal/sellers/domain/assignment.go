package domain

import (
	"math/rand"

	"superstore/database"
)

// RegionIndex indexe les vendeurs par région pour l'affectation régionale.
// Le pool global sert de fallback quand aucune région ne correspond.
type RegionIndex struct {
	byRegion map[string][]string
	all      []string
}

// NewRegionIndex construit l'index depuis le roster existant
func NewRegionIndex(sellers []database.Seller) *RegionIndex {
	idx := &RegionIndex{byRegion: make(map[string][]string)}
	for _, s := range sellers {
		idx.byRegion[s.Region] = append(idx.byRegion[s.Region], s.ID)
		idx.all = append(idx.all, s.ID)
	}
	return idx
}

// Empty vérifie l'absence totale de vendeurs
func (idx *RegionIndex) Empty() bool {
	return len(idx.all) == 0
}

// InRegion retourne les vendeurs d'une région donnée
func (idx *RegionIndex) InRegion(region string) []string {
	return append([]string{}, idx.byRegion[region]...)
}

// Pick tire un vendeur uniformément parmi ceux de la région du client ;
// si la région est inconnue, NULL, ou sans vendeur, tirage uniforme sur
// le pool complet. L'appelant garantit un index non vide.
func (idx *RegionIndex) Pick(rng *rand.Rand, customerRegion *string) string {
	pool := idx.all
	if customerRegion != nil {
		if regional := idx.byRegion[*customerRegion]; len(regional) > 0 {
			pool = regional
		}
	}
	return pool[rng.Intn(len(pool))]
}
