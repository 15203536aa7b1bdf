package domain

import (
	"errors"
	"math/rand"
	"time"
)

// JoinWindow représente la fenêtre d'ancienneté possible d'un vendeur,
// exprimée en jours avant la date de génération.
// Value object immuable : bornes fixées à la création, validées une fois.
type JoinWindow struct {
	minDays int
	maxDays int
}

// NewJoinWindow crée une fenêtre [minDays, maxDays] avec validation
func NewJoinWindow(minDays, maxDays int) (JoinWindow, error) {
	if minDays < 0 {
		return JoinWindow{}, errors.New("minDays cannot be negative")
	}
	if maxDays < minDays {
		return JoinWindow{}, errors.New("maxDays cannot be less than minDays")
	}
	return JoinWindow{minDays: minDays, maxDays: maxDays}, nil
}

// MinDays retourne la borne basse
func (w JoinWindow) MinDays() int {
	return w.minDays
}

// MaxDays retourne la borne haute
func (w JoinWindow) MaxDays() int {
	return w.maxDays
}

// Pick tire une date uniforme dans la fenêtre, bornes incluses
func (w JoinWindow) Pick(rng *rand.Rand, now time.Time) time.Time {
	days := w.minDays + rng.Intn(w.maxDays-w.minDays+1)
	return now.AddDate(0, 0, -days)
}

// Contains vérifie qu'une date tombe dans la fenêtre relative à now
func (w JoinWindow) Contains(t, now time.Time) bool {
	earliest := now.AddDate(0, 0, -w.maxDays)
	latest := now.AddDate(0, 0, -w.minDays)
	return !t.Before(earliest) && !t.After(latest)
}
