package application

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"superstore/database"
	ingestdomain "superstore/internal/ingest/domain"
	"superstore/internal/load/infrastructure"
	sharedinfra "superstore/internal/shared/infrastructure"
)

// Report compte le travail effectué par un run du loader,
// pour rendre auditables les lignes ignorées sans interrompre le batch
type Report struct {
	SourceRows    int `json:"source_rows"`
	Categories    int `json:"categories"`
	Subcategories int `json:"subcategories"`
	Customers     int `json:"customers"`
	Products      int `json:"products"`
	Orders        int `json:"orders"`
	OrderLines    int `json:"order_lines"`

	ProductsSkipped int `json:"products_skipped"`
	LinesSkipped    int `json:"lines_skipped"`
	UnmappedEnums   int `json:"unmapped_enums"`
}

// Loader exécute le chargement relationnel en ordre strict de dépendances :
// catégories -> sous-catégories -> clients -> produits -> commandes -> lignes.
// Chaque étape s'exécute dans sa propre transaction (la source committe par
// étape) ; les dimensions sont idempotentes, la table de faits est append-only.
type Loader struct {
	repo     *infrastructure.LoadRepository
	resolver *IdentityResolver
	uow      sharedinfra.UnitOfWork
	log      *logrus.Logger
}

// NewLoader crée un loader lié à une connexion store
func NewLoader(db *sql.DB, log *logrus.Logger) *Loader {
	repo := infrastructure.NewLoadRepository(db)
	return &Loader{
		repo:     repo,
		resolver: NewIdentityResolver(repo),
		uow:      sharedinfra.NewUnitOfWork(db),
		log:      log,
	}
}

// Load effectue un rechargement complet depuis l'extraction donnée.
// Le vidage initial est destructif et n'est exécuté qu'ici, une fois
// par rechargement ; toutes les étapes suivantes sont ré-exécutables.
func (l *Loader) Load(ex ingestdomain.Extraction) (*Report, error) {
	report := &Report{
		SourceRows:    len(ex.Lines),
		UnmappedEnums: ex.UnmappedEnums,
	}

	if err := l.stage("clear", func() error { return l.repo.ClearAll() }); err != nil {
		return report, err
	}

	if err := l.stage("categories", func() error { return l.loadCategories(ex, report) }); err != nil {
		return report, err
	}
	if err := l.resolver.PreloadCategories(); err != nil {
		return report, fmt.Errorf("préchargement catégories: %w", err)
	}

	if err := l.stage("subcategories", func() error { return l.loadSubcategories(ex, report) }); err != nil {
		return report, err
	}
	if err := l.resolver.PreloadSubcategories(); err != nil {
		return report, fmt.Errorf("préchargement sous-catégories: %w", err)
	}

	if err := l.stage("customers", func() error { return l.loadCustomers(ex, report) }); err != nil {
		return report, err
	}

	// produits ignorés : leurs lignes de faits ne peuvent référencer
	// aucun parent et doivent être ignorées au même titre
	skippedProducts := make(map[string]struct{})
	if err := l.stage("products", func() error { return l.loadProducts(ex, report, skippedProducts) }); err != nil {
		return report, err
	}
	if err := l.stage("orders", func() error { return l.loadOrders(ex, report) }); err != nil {
		return report, err
	}
	if err := l.stage("order_lines", func() error { return l.loadOrderLines(ex, report, skippedProducts) }); err != nil {
		return report, err
	}

	l.log.WithFields(logrus.Fields{
		"source_rows":      report.SourceRows,
		"categories":       report.Categories,
		"subcategories":    report.Subcategories,
		"customers":        report.Customers,
		"products":         report.Products,
		"products_skipped": report.ProductsSkipped,
		"orders":           report.Orders,
		"order_lines":      report.OrderLines,
		"lines_skipped":    report.LinesSkipped,
		"unmapped_enums":   report.UnmappedEnums,
	}).Info("chargement terminé")

	return report, nil
}

// stage exécute une étape dans sa propre transaction
func (l *Loader) stage(name string, fn func() error) error {
	l.log.WithField("stage", name).Debug("démarrage étape")
	err := l.uow.Execute(func(tx *sql.Tx) error {
		l.repo.BindTx(tx)
		defer l.repo.UnbindTx()
		return fn()
	})
	if err != nil {
		return fmt.Errorf("étape %s: %w", name, err)
	}
	return nil
}

func (l *Loader) loadCategories(ex ingestdomain.Extraction, report *Report) error {
	for _, name := range ex.Categories {
		ok, err := l.repo.InsertCategory(name)
		if err != nil {
			return err
		}
		if ok {
			report.Categories++
		}
	}
	return nil
}

func (l *Loader) loadSubcategories(ex ingestdomain.Extraction, report *Report) error {
	for _, pair := range ex.Pairs {
		categoryID, ok := l.resolver.ResolveCategory(pair.Category)
		if !ok {
			// parent introuvable : le couple est ignoré, pas d'orphelin
			continue
		}
		inserted, err := l.repo.InsertSubcategory(categoryID, pair.Name)
		if err != nil {
			return err
		}
		if inserted {
			report.Subcategories++
		}
	}
	return nil
}

func (l *Loader) loadCustomers(ex ingestdomain.Extraction, report *Report) error {
	for _, c := range ex.Customers {
		ok, err := l.repo.InsertCustomer(c)
		if err != nil {
			return err
		}
		if ok {
			report.Customers++
		}
	}
	return nil
}

// loadProducts insère les produits dont les deux FK sont résolues.
// Un produit à catégorie irrésoluble ou sans sous-catégorie est ignoré,
// compté et mémorisé dans skipped, jamais inséré avec une FK nulle ;
// la sous-catégorie manquante est créée paresseusement par le résolveur.
func (l *Loader) loadProducts(ex ingestdomain.Extraction, report *Report, skipped map[string]struct{}) error {
	for _, p := range ex.Products {
		categoryID, ok := l.resolver.ResolveCategory(p.Category)
		if !ok {
			report.ProductsSkipped++
			skipped[p.ID] = struct{}{}
			l.log.WithFields(logrus.Fields{
				"product_id": p.ID,
				"category":   p.Category,
			}).Warn("produit ignoré: catégorie irrésoluble")
			continue
		}

		subcategoryID, err := l.resolver.ResolveSubcategory(p.Category, p.SubCategory)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) || errors.Is(err, ErrBlankSubcategory) {
				report.ProductsSkipped++
				skipped[p.ID] = struct{}{}
				continue
			}
			return err
		}

		inserted, err := l.repo.InsertProduct(toProduct(p, categoryID, subcategoryID))
		if err != nil {
			return err
		}
		if inserted {
			report.Products++
		}
	}
	return nil
}

func (l *Loader) loadOrders(ex ingestdomain.Extraction, report *Report) error {
	for _, o := range ex.Orders {
		ok, err := l.repo.InsertOrder(o)
		if err != nil {
			return err
		}
		if ok {
			report.Orders++
		}
	}
	return nil
}

// loadOrderLines ajoute chaque occurrence source à la table de faits.
// Les lignes sans identifiants de commande ou de produit, ou dont le
// produit a été ignoré à l'étape précédente, sont ignorées et comptées :
// elles ne pourraient référencer aucun parent.
func (l *Loader) loadOrderLines(ex ingestdomain.Extraction, report *Report, skippedProducts map[string]struct{}) error {
	for _, line := range ex.Lines {
		if line.OrderID == "" || line.ProductID == "" {
			report.LinesSkipped++
			continue
		}
		if _, orphan := skippedProducts[line.ProductID]; orphan {
			report.LinesSkipped++
			l.log.WithFields(logrus.Fields{
				"order_id":   line.OrderID,
				"product_id": line.ProductID,
			}).Warn("ligne ignorée: produit non chargé")
			continue
		}
		if err := l.repo.InsertOrderLine(line); err != nil {
			return err
		}
		report.OrderLines++
	}
	return nil
}

func toProduct(p ingestdomain.ProductCandidate, categoryID, subcategoryID int) database.Product {
	return database.Product{
		ID:            p.ID,
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		Name:          p.Name,
	}
}
