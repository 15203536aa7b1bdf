package domain

import "strings"

// Domain représente un domaine énuméré fermé de valeurs canoniques.
// Les valeurs canoniques sont déclarées à l'avance et jamais étendues au runtime.
type Domain struct {
	name   string
	values []string
}

// NewDomain crée un domaine énuméré avec ses valeurs canoniques
func NewDomain(name string, values ...string) Domain {
	return Domain{name: name, values: append([]string{}, values...)}
}

// Name retourne le nom du domaine
func (d Domain) Name() string {
	return d.name
}

// Values retourne une copie des valeurs canoniques
func (d Domain) Values() []string {
	return append([]string{}, d.values...)
}

// Normalize projette une valeur source libre sur le domaine canonique.
// Algorithme : trim des espaces, correspondance exacte, puis correspondance
// insensible à la casse. En cas d'échec, retourne ("", false) : la valeur
// non mappée devient un NULL explicite côté store, jamais une erreur.
func (d Domain) Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	for _, v := range d.values {
		if s == v {
			return v, true
		}
	}

	low := strings.ToLower(s)
	for _, v := range d.values {
		if strings.ToLower(v) == low {
			return v, true
		}
	}

	return "", false
}

// Contains vérifie l'appartenance stricte d'une valeur au domaine
func (d Domain) Contains(value string) bool {
	for _, v := range d.values {
		if v == value {
			return true
		}
	}
	return false
}

// Domaines canoniques du jeu de données Superstore
var (
	SegmentDomain  = NewDomain("segment", "Consumer", "Corporate", "Home Office")
	RegionDomain   = NewDomain("region", "East", "West", "Central", "South")
	ShipModeDomain = NewDomain("ship_mode", "First Class", "Second Class", "Standard Class", "Same Day")
)

// NormalizeNullable applique Normalize et retourne nil pour une valeur non mappée,
// prête à être passée telle quelle à un paramètre SQL nullable.
func NormalizeNullable(raw string, d Domain) *string {
	v, ok := d.Normalize(raw)
	if !ok {
		return nil
	}
	return &v
}
