package application

import (
	"errors"
	"fmt"

	ingestdomain "superstore/internal/ingest/domain"
	"superstore/internal/load/infrastructure"
)

// ErrCategoryNotFound : la catégorie demandée n'existe ni dans la source ni dans le store
var ErrCategoryNotFound = errors.New("category not found")

// ErrBlankSubcategory : un nom de sous-catégorie vide ne peut pas devenir
// une ligne dimensionnelle
var ErrBlankSubcategory = errors.New("blank subcategory name")

// IdentityResolver maintient les tables de correspondance entre clés
// naturelles et identifiants de substitution assignés par le store.
// Struct explicite appartenant à un run du loader : jamais d'état
// de package partagé entre invocations.
type IdentityResolver struct {
	repo          *infrastructure.LoadRepository
	categories    map[string]int
	subcategories map[ingestdomain.SubcategoryPair]int
	// table secondaire nom -> id pour le fallback toutes-catégories,
	// premier enregistrement gagnant : le même nom sous plusieurs parents
	// se résout toujours vers le même id d'un run à l'autre
	subcategoryByName map[string]int
}

// NewIdentityResolver crée un résolveur vide lié au repository donné
func NewIdentityResolver(repo *infrastructure.LoadRepository) *IdentityResolver {
	return &IdentityResolver{
		repo:              repo,
		categories:        make(map[string]int),
		subcategories:     make(map[ingestdomain.SubcategoryPair]int),
		subcategoryByName: make(map[string]int),
	}
}

// PreloadCategories recharge la table nom -> category_id depuis le store
func (r *IdentityResolver) PreloadCategories() error {
	m, err := r.repo.FetchCategories()
	if err != nil {
		return err
	}
	r.categories = m
	return nil
}

// PreloadSubcategories recharge la table (catégorie, sous-catégorie) -> id.
// Le nom de catégorie parent est retrouvé via la table des catégories,
// PreloadCategories doit donc avoir été appelé avant.
func (r *IdentityResolver) PreloadSubcategories() error {
	subs, err := r.repo.FetchSubcategories()
	if err != nil {
		return err
	}

	byID := make(map[int]string, len(r.categories))
	for name, id := range r.categories {
		byID[id] = name
	}

	r.subcategories = make(map[ingestdomain.SubcategoryPair]int, len(subs))
	r.subcategoryByName = make(map[string]int, len(subs))
	for _, s := range subs {
		catName, ok := byID[s.CategoryID]
		if !ok {
			continue
		}
		r.subcategories[ingestdomain.SubcategoryPair{Category: catName, Name: s.Name}] = s.ID
		r.registerName(s.Name, s.ID)
	}
	return nil
}

// ResolveCategory retourne l'identifiant de la catégorie, false si inconnue
func (r *IdentityResolver) ResolveCategory(name string) (int, bool) {
	id, ok := r.categories[name]
	return id, ok
}

// ResolveSubcategory retourne l'identifiant de la sous-catégorie pour le
// couple (catégorie, nom). Ordre de résolution :
//  1. correspondance exacte du couple
//  2. fallback par nom seul, toutes catégories confondues (les sources
//     bruitées associent parfois une sous-catégorie à un parent variable)
//  3. création paresseuse sous la catégorie donnée, puis enregistrement
func (r *IdentityResolver) ResolveSubcategory(category, name string) (int, error) {
	if name == "" {
		return 0, ErrBlankSubcategory
	}

	pair := ingestdomain.SubcategoryPair{Category: category, Name: name}
	if id, ok := r.subcategories[pair]; ok {
		return id, nil
	}

	if id, ok := r.resolveByNameAnyCategory(name); ok {
		return id, nil
	}

	categoryID, ok := r.categories[category]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrCategoryNotFound, category)
	}

	id, err := r.repo.CreateSubcategory(categoryID, name)
	if err != nil {
		return 0, err
	}
	r.subcategories[pair] = id
	r.registerName(name, id)
	return id, nil
}

// resolveByNameAnyCategory est la branche de fallback explicite : recherche
// du nom de sous-catégorie sans tenir compte du parent
func (r *IdentityResolver) resolveByNameAnyCategory(name string) (int, bool) {
	id, ok := r.subcategoryByName[name]
	return id, ok
}

// registerName alimente la table de fallback, premier enregistrement gagnant
func (r *IdentityResolver) registerName(name string, id int) {
	if _, ok := r.subcategoryByName[name]; !ok {
		r.subcategoryByName[name] = id
	}
}

// Register enregistre une correspondance déjà connue (utilisé par les tests
// et par le loader après création explicite)
func (r *IdentityResolver) Register(category, name string, id int) {
	r.subcategories[ingestdomain.SubcategoryPair{Category: category, Name: name}] = id
	r.registerName(name, id)
}
