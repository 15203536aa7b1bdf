package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"superstore/database"
	sharedinfra "superstore/internal/shared/infrastructure"
)

// Codes d'erreur PostgreSQL tolérés par le finaliseur d'intégrité
const (
	pgDuplicateObject = "42710"
	pgDuplicateTable  = "42P07"
)

// LineRegion associe une ligne de faits à la région du client de sa commande
type LineRegion struct {
	LineID int64
	Region *string
}

// SellerRepository porte la persistance du roster, l'affectation des
// lignes de faits et la finalisation d'intégrité référentielle
type SellerRepository struct {
	sharedinfra.BaseRepository
}

// NewSellerRepository crée un nouveau repository vendeurs
func NewSellerRepository(db *sql.DB) *SellerRepository {
	return &SellerRepository{BaseRepository: sharedinfra.NewBaseRepository(db)}
}

// InsertSeller insère un vendeur si absent (le roster est figé après création)
func (r *SellerRepository) InsertSeller(s database.Seller) (bool, error) {
	res, err := r.Exec(`
		INSERT INTO sellers (seller_id, seller_name, seller_email, seller_phone, seller_region, seller_rating, join_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (seller_id) DO NOTHING
	`, s.ID, s.Name, s.Email, s.Phone, s.Region, s.Rating, s.JoinDate)
	if err != nil {
		return false, fmt.Errorf("insertion vendeur %s: %w", s.ID, err)
	}
	n, err := res.RowsAffected()
	return err == nil && n > 0, nil
}

// ListSellers retourne le roster complet, ordonné par identifiant
func (r *SellerRepository) ListSellers() ([]database.Seller, error) {
	rows, err := r.Query(`
		SELECT seller_id, seller_name, seller_email, seller_phone, seller_region, seller_rating, join_date
		FROM sellers
		ORDER BY seller_id
	`)
	if err != nil {
		return nil, fmt.Errorf("lecture vendeurs: %w", err)
	}
	defer rows.Close()

	var sellers []database.Seller
	for rows.Next() {
		var s database.Seller
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Region, &s.Rating, &s.JoinDate); err != nil {
			return nil, err
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

// FetchLineRegions retourne chaque ligne de faits avec la région du client
// de sa commande. Tri par identifiant de ligne : l'ordre retourné par le
// store n'est pas garanti sinon, et l'affectation à graine fixe exige une
// séquence d'entrée stable pour être reproductible.
func (r *SellerRepository) FetchLineRegions() ([]LineRegion, error) {
	rows, err := r.Query(`
		SELECT ol.id, c.region
		FROM order_lines ol
		JOIN orders o ON ol.order_id = o.order_id
		JOIN customers c ON o.customer_id = c.customer_id
		ORDER BY ol.id
	`)
	if err != nil {
		return nil, fmt.Errorf("lecture régions des lignes: %w", err)
	}
	defer rows.Close()

	var lines []LineRegion
	for rows.Next() {
		var lr LineRegion
		if err := rows.Scan(&lr.LineID, &lr.Region); err != nil {
			return nil, err
		}
		lines = append(lines, lr)
	}
	return lines, rows.Err()
}

// UpdateLineSeller affecte un vendeur à une ligne de faits
func (r *SellerRepository) UpdateLineSeller(lineID int64, sellerID string) error {
	_, err := r.Exec("UPDATE order_lines SET seller_id = $1 WHERE id = $2", sellerID, lineID)
	if err != nil {
		return fmt.Errorf("affectation vendeur ligne %d: %w", lineID, err)
	}
	return nil
}

// EnsureSellerColumn ajoute la colonne seller_id à la table de faits si
// elle manque (schémas créés avant l'introduction des vendeurs)
func (r *SellerRepository) EnsureSellerColumn() error {
	var col string
	err := r.QueryRow(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = 'order_lines' AND column_name = 'seller_id'
	`).Scan(&col)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("inspection colonne seller_id: %w", err)
	}

	if _, err := r.Exec("ALTER TABLE order_lines ADD COLUMN seller_id VARCHAR(50)"); err != nil {
		return fmt.Errorf("ajout colonne seller_id: %w", err)
	}
	return nil
}

// AddSellerForeignKey pose la contrainte FK order_lines.seller_id -> sellers.
// Une contrainte déjà présente n'est pas une erreur : le code duplicate_object
// est avalé, tout autre échec remonte.
func (r *SellerRepository) AddSellerForeignKey() error {
	_, err := r.Exec(`
		ALTER TABLE order_lines
		ADD CONSTRAINT fk_order_lines_seller FOREIGN KEY (seller_id) REFERENCES sellers(seller_id)
	`)
	if err != nil && !isDuplicateConstraint(err) {
		return fmt.Errorf("ajout contrainte fk_order_lines_seller: %w", err)
	}
	return nil
}

// CreateAssignmentIndexes crée les index secondaires de lecture.
// Purement additif, ré-exécutable.
func (r *SellerRepository) CreateAssignmentIndexes() error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_order_lines_seller_id ON order_lines(seller_id)",
		"CREATE INDEX IF NOT EXISTS idx_sellers_region ON sellers(seller_region)",
		"CREATE INDEX IF NOT EXISTS idx_sellers_rating ON sellers(seller_rating DESC)",
	}
	for _, stmt := range statements {
		if _, err := r.Exec(stmt); err != nil {
			return fmt.Errorf("création index: %w", err)
		}
	}
	return nil
}

// isDuplicateConstraint reconnaît les erreurs "objet déjà existant" de PostgreSQL
func isDuplicateConstraint(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgDuplicateObject || string(pqErr.Code) == pgDuplicateTable
}
