package application

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"superstore/internal/sellers/domain"
	"superstore/internal/sellers/infrastructure"
)

// ErrEmptySellerPool : aucune affectation possible sans au moins un vendeur.
// Seule erreur fatale de l'étape d'affectation.
var ErrEmptySellerPool = errors.New("no sellers available for assignment")

// AssignmentService orchestre la génération du roster, l'affectation
// régionale des lignes de faits et la finalisation d'intégrité.
// Étape composable : exécutable à tout moment après le chargement des
// faits, et ré-exécutable sans corrompre l'état.
type AssignmentService struct {
	repo *infrastructure.SellerRepository
	log  *logrus.Logger
}

// NewAssignmentService crée un service d'affectation lié à une connexion store
func NewAssignmentService(db *sql.DB, log *logrus.Logger) *AssignmentService {
	return &AssignmentService{
		repo: infrastructure.NewSellerRepository(db),
		log:  log,
	}
}

// GenerateRoster génère et persiste le catalogue de vendeurs avec la graine
// fixe : le roster est identique d'un run à l'autre, les vendeurs déjà
// présents sont laissés intacts (insert if absent). Retourne le nombre
// de vendeurs nouvellement insérés.
func (s *AssignmentService) GenerateRoster() (int, error) {
	rng := rand.New(rand.NewSource(domain.RosterSeed))
	roster, err := domain.NewRoster(rng, time.Now())
	if err != nil {
		return 0, fmt.Errorf("génération roster: %w", err)
	}

	created := 0
	for _, seller := range roster {
		ok, err := s.repo.InsertSeller(seller)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	s.log.WithFields(logrus.Fields{
		"roster_size": len(roster),
		"created":     created,
	}).Info("roster vendeurs prêt")
	return created, nil
}

// AssignSellers affecte un vendeur à chaque ligne de faits existante.
// Tirage uniforme parmi les vendeurs de la région du client, fallback
// sur le pool complet si la région n'a aucun vendeur.
//
// Politique de ré-exécution : chaque run réaffecte toutes les lignes
// (y compris celles déjà affectées), avec la même graine fixe — sur une
// séquence de lignes identique le résultat est donc reproductible.
// Un run interrompu se rattrape en relançant l'étape jusqu'au bout.
func (s *AssignmentService) AssignSellers() (int, error) {
	sellers, err := s.repo.ListSellers()
	if err != nil {
		return 0, err
	}

	index := domain.NewRegionIndex(sellers)
	if index.Empty() {
		return 0, ErrEmptySellerPool
	}

	lines, err := s.repo.FetchLineRegions()
	if err != nil {
		return 0, err
	}

	rng := rand.New(rand.NewSource(domain.RosterSeed))
	assigned := 0
	for _, line := range lines {
		sellerID := index.Pick(rng, line.Region)
		if err := s.repo.UpdateLineSeller(line.LineID, sellerID); err != nil {
			return assigned, err
		}
		assigned++
	}

	s.log.WithFields(logrus.Fields{
		"lines_assigned": assigned,
		"sellers":        len(sellers),
	}).Info("affectation vendeurs terminée")
	return assigned, nil
}

// Finalize pose la contrainte FK et les index secondaires après peuplement.
// Additif et ré-exécutable : une contrainte déjà présente est tolérée.
func (s *AssignmentService) Finalize() error {
	if err := s.repo.EnsureSellerColumn(); err != nil {
		return err
	}
	if err := s.repo.AddSellerForeignKey(); err != nil {
		return err
	}
	if err := s.repo.CreateAssignmentIndexes(); err != nil {
		return err
	}
	s.log.Info("intégrité référentielle finalisée")
	return nil
}

// Run enchaîne roster, affectation et finalisation
func (s *AssignmentService) Run() (int, error) {
	if _, err := s.GenerateRoster(); err != nil {
		return 0, err
	}
	assigned, err := s.AssignSellers()
	if err != nil {
		return assigned, err
	}
	return assigned, s.Finalize()
}
