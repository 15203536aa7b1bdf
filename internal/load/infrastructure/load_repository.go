package infrastructure

import (
	"database/sql"
	"fmt"

	"superstore/database"
	sharedinfra "superstore/internal/shared/infrastructure"
)

// LoadRepository porte toutes les écritures du chargement relationnel.
// Les tables dimensionnelles et à clé naturelle sont insérées en
// "insert if absent" (ON CONFLICT DO NOTHING), la table de faits en
// append inconditionnel.
type LoadRepository struct {
	sharedinfra.BaseRepository
}

// NewLoadRepository crée un nouveau repository de chargement
func NewLoadRepository(db *sql.DB) *LoadRepository {
	return &LoadRepository{BaseRepository: sharedinfra.NewBaseRepository(db)}
}

// ClearAll vide les tables cibles dans l'ordre inverse des dépendances FK.
// Destructif : réservé au rechargement complet, jamais à l'append incrémental.
func (r *LoadRepository) ClearAll() error {
	tables := []string{"order_lines", "orders", "products", "subcategories", "categories", "customers"}
	for _, t := range tables {
		if _, err := r.Exec(fmt.Sprintf("TRUNCATE %s CASCADE", t)); err != nil {
			return fmt.Errorf("truncate %s: %w", t, err)
		}
	}
	return nil
}

// InsertCategory insère une catégorie si absente, retourne true si insérée
func (r *LoadRepository) InsertCategory(name string) (bool, error) {
	res, err := r.Exec(`
		INSERT INTO categories (category_name)
		VALUES ($1)
		ON CONFLICT (category_name) DO NOTHING
	`, name)
	if err != nil {
		return false, fmt.Errorf("insertion catégorie %q: %w", name, err)
	}
	return inserted(res), nil
}

// FetchCategories retourne la table nom -> category_id existante
func (r *LoadRepository) FetchCategories() (map[string]int, error) {
	rows, err := r.Query("SELECT category_id, category_name FROM categories")
	if err != nil {
		return nil, fmt.Errorf("lecture catégories: %w", err)
	}
	defer rows.Close()

	m := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		m[name] = id
	}
	return m, rows.Err()
}

// InsertSubcategory insère une sous-catégorie si absente pour ce parent
func (r *LoadRepository) InsertSubcategory(categoryID int, name string) (bool, error) {
	res, err := r.Exec(`
		INSERT INTO subcategories (category_id, subcategory_name)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, categoryID, name)
	if err != nil {
		return false, fmt.Errorf("insertion sous-catégorie %q: %w", name, err)
	}
	return inserted(res), nil
}

// FetchSubcategories retourne toutes les sous-catégories existantes,
// en ordre d'identifiant pour rendre le fallback par nom reproductible
func (r *LoadRepository) FetchSubcategories() ([]database.Subcategory, error) {
	rows, err := r.Query("SELECT subcategory_id, category_id, subcategory_name FROM subcategories ORDER BY subcategory_id")
	if err != nil {
		return nil, fmt.Errorf("lecture sous-catégories: %w", err)
	}
	defer rows.Close()

	var subs []database.Subcategory
	for rows.Next() {
		var s database.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// CreateSubcategory crée une sous-catégorie et retourne son identifiant.
// Seul chemin "create-on-miss" du pipeline (résolution paresseuse au stade produit).
func (r *LoadRepository) CreateSubcategory(categoryID int, name string) (int, error) {
	var id int
	err := r.QueryRow(`
		INSERT INTO subcategories (category_id, subcategory_name)
		VALUES ($1, $2)
		RETURNING subcategory_id
	`, categoryID, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("création sous-catégorie %q: %w", name, err)
	}
	return id, nil
}

// InsertCustomer insère un client si sa clé naturelle est absente
func (r *LoadRepository) InsertCustomer(c database.Customer) (bool, error) {
	res, err := r.Exec(`
		INSERT INTO customers (customer_id, customer_name, segment, country, city, state, postal_code, region)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (customer_id) DO NOTHING
	`, c.ID, c.Name, c.Segment, c.Country, c.City, c.State, c.PostalCode, c.Region)
	if err != nil {
		return false, fmt.Errorf("insertion client %s: %w", c.ID, err)
	}
	return inserted(res), nil
}

// InsertProduct insère un produit si sa clé naturelle est absente.
// Les deux FK doivent être résolues en amont, jamais de NULL ici.
func (r *LoadRepository) InsertProduct(p database.Product) (bool, error) {
	res, err := r.Exec(`
		INSERT INTO products (product_id, category_id, subcategory_id, product_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id) DO NOTHING
	`, p.ID, p.CategoryID, p.SubcategoryID, p.Name)
	if err != nil {
		return false, fmt.Errorf("insertion produit %s: %w", p.ID, err)
	}
	return inserted(res), nil
}

// InsertOrder insère une commande si sa clé naturelle est absente
func (r *LoadRepository) InsertOrder(o database.Order) (bool, error) {
	res, err := r.Exec(`
		INSERT INTO orders (order_id, order_date, ship_date, ship_mode, customer_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO NOTHING
	`, o.ID, o.OrderDate, o.ShipDate, o.ShipMode, o.CustomerID)
	if err != nil {
		return false, fmt.Errorf("insertion commande %s: %w", o.ID, err)
	}
	return inserted(res), nil
}

// InsertOrderLine ajoute une ligne de faits (append inconditionnel)
func (r *LoadRepository) InsertOrderLine(l database.OrderLine) error {
	_, err := r.Exec(`
		INSERT INTO order_lines (order_id, product_id, sales, quantity, discount, profit)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, l.OrderID, l.ProductID, l.Sales, l.Quantity, l.Discount, l.Profit)
	if err != nil {
		return fmt.Errorf("insertion ligne de commande (order %s): %w", l.OrderID, err)
	}
	return nil
}

// inserted traduit le RowsAffected d'un INSERT ... DO NOTHING
func inserted(res sql.Result) bool {
	n, err := res.RowsAffected()
	return err == nil && n > 0
}
