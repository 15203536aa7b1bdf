package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"superstore/database"
	sellersapp "superstore/internal/sellers/application"
)

// Étape indépendante : exécutable à tout moment après le chargement des
// lignes de faits, et ré-exécutable sans corrompre l'état.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	db, err := database.Open(database.ConfigFromEnv())
	if err != nil {
		log.Fatal("❌ Erreur connexion DB:", err)
	}
	defer db.Close()

	fmt.Println("✅ Connexion PostgreSQL établie")
	fmt.Println("🧑‍💼 Génération du roster et affectation des vendeurs...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	service := sellersapp.NewAssignmentService(db, logrus.New())
	assigned, err := service.Run()
	if err != nil {
		log.Fatal("❌ Erreur affectation vendeurs:", err)
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✅ Terminé: %d lignes de vente affectées\n", assigned)
}
