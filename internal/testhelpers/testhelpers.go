package testhelpers

import (
	"database/sql"
	"io"
	"testing"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"superstore/database"
	loadinfra "superstore/internal/load/infrastructure"
	sellersinfra "superstore/internal/sellers/infrastructure"
)

// TestContext contient les dépendances pour les tests d'intégration.
// Les services sont créés par les tests eux-mêmes pour éviter les import cycles.
type TestContext struct {
	DB *sql.DB

	// Repositories
	LoadRepo   *loadinfra.LoadRepository
	SellerRepo *sellersinfra.SellerRepository
}

// SetupTestDB initialise une connexion à la base de données de test
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	// Charger les variables d'environnement
	_ = godotenv.Load("../../.env")

	db, err := database.Open(database.ConfigFromEnv())
	if err != nil {
		tb.Fatalf("Failed to open database: %v", err)
	}

	if err := database.EnsureSchema(db); err != nil {
		tb.Fatalf("Failed to ensure schema: %v", err)
	}

	return db
}

// SetupTestContext initialise un contexte de test avec DB et repositories
func SetupTestContext(tb testing.TB) *TestContext {
	tb.Helper()

	db := SetupTestDB(tb)
	return &TestContext{
		DB:         db,
		LoadRepo:   loadinfra.NewLoadRepository(db),
		SellerRepo: sellersinfra.NewSellerRepository(db),
	}
}

// Cleanup libère les ressources du contexte de test
func (ctx *TestContext) Cleanup() {
	if ctx.DB != nil {
		ctx.DB.Close()
	}
}

// SilentLogger retourne un logger muet pour les tests
func SilentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// SkipIfNoDatabase skip le test/benchmark si la DB n'est pas disponible
func SkipIfNoDatabase(tb testing.TB) {
	tb.Helper()

	_ = godotenv.Load("../../.env")

	db, err := sql.Open("postgres", database.ConfigFromEnv().ConnString())
	if err != nil {
		tb.Skip("Database not available:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		tb.Skip("Database not available:", err)
	}
}
