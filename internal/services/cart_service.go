package services

import (
	stdlog "log"

	"motodealer/internal/cart"
	"motodealer/internal/domain"
	"motodealer/internal/repos"
)

// CartService binds a session's cart.Store to its persisted blob. The store
// itself never fails: a missing or corrupt blob loads as an empty cart, and
// persistence errors degrade the session to in-memory only (logged, never
// surfaced to the user).
type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService { return &CartService{Carts: carts} }

// ForSession loads (or creates) the session's cart and wires the persistence
// subscriber, so every mutation writes the blob back.
func (s *CartService) ForSession(sessionID string) *cart.Store {
	key := cart.StorageKeyPrefix + sessionID

	store := cart.NewStore()
	if blob, err := s.Carts.Load(key); err != nil {
		stdlog.Printf("[cart] load %s: %v", key, err)
	} else if blob != nil {
		store.Load(blob)
	}

	store.Subscribe(func(snapshot []byte) {
		if err := s.Carts.Save(key, snapshot); err != nil {
			stdlog.Printf("[cart] persist %s: %v", key, err)
		}
	})
	return store
}

// Snapshot converts a catalog product into the cart's add-time snapshot.
func Snapshot(p domain.Product) cart.Snapshot {
	snap := cart.Snapshot{
		ID:    p.ID,
		Name:  p.Name,
		Brand: p.Brand,
		Model: p.Model,
		Year:  p.Year,
		Price: p.Price,
	}
	if img := p.PrimaryImage(); img != nil {
		snap.ImageURL = img.ImageURL
	}
	return snap
}
