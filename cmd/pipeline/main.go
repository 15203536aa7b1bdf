package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"superstore/database"
	ingestdomain "superstore/internal/ingest/domain"
	ingestinfra "superstore/internal/ingest/infrastructure"
	loadapp "superstore/internal/load/application"
)

func main() {
	// Charge .env
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	logger := logrus.New()
	if getEnv("LOG_LEVEL", "info") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Connexion PostgreSQL
	db, err := database.Open(database.ConfigFromEnv())
	if err != nil {
		log.Fatal("❌ Erreur connexion DB:", err)
	}
	defer db.Close()

	fmt.Println("✅ Connexion PostgreSQL établie")

	if err := database.EnsureSchema(db); err != nil {
		log.Fatal("❌ Erreur création schéma:", err)
	}

	sourceFile := getEnv("SOURCE_FILE", "Superstore.xlsx")
	records, err := readSource(sourceFile)
	if err != nil {
		log.Fatal("❌ Erreur lecture source:", err)
	}
	fmt.Printf("📄 %d lignes lues depuis %s\n", len(records), sourceFile)

	fmt.Println("🚚 Démarrage du chargement relationnel...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	extraction := ingestdomain.Extract(records)
	loader := loadapp.NewLoader(db, logger)
	report, err := loader.Load(extraction)
	if err != nil {
		log.Fatal("❌ Erreur lors du chargement:", err)
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("✅ Chargement terminé avec succès!")
	fmt.Printf("   📦 %d catégories, %d sous-catégories\n", report.Categories, report.Subcategories)
	fmt.Printf("   👥 %d clients, 🛒 %d produits (%d ignorés)\n", report.Customers, report.Products, report.ProductsSkipped)
	fmt.Printf("   🧾 %d commandes, %d lignes de vente (%d ignorées)\n", report.Orders, report.OrderLines, report.LinesSkipped)
	if report.UnmappedEnums > 0 {
		fmt.Printf("   ⚠️ %d valeurs énumérées non mappées (stockées en NULL)\n", report.UnmappedEnums)
	}
	fmt.Println()
	fmt.Println("Vous pouvez maintenant affecter les vendeurs avec:")
	fmt.Println("  go run ./cmd/sellers")
}

// readSource choisit le lecteur selon l'extension du fichier
func readSource(path string) ([]ingestdomain.SourceRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ingestinfra.NewCSVReader(path).Read()
	case ".xlsx", ".xlsm":
		return ingestinfra.NewExcelReader(path, getEnv("SOURCE_SHEET", "")).Read()
	default:
		return nil, fmt.Errorf("format de fichier non géré: %s", path)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
