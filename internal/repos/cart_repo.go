package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// CartRepo stores each session cart as a single opaque JSON blob under its
// namespaced storage key. Concurrent tabs sharing one session are
// last-write-wins; there is no merge protocol.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// Load returns the persisted payload, or nil when no cart exists yet.
func (r *CartRepo) Load(storageKey string) ([]byte, error) {
	var payload string
	err := r.db.Get(&payload, `SELECT payload FROM carts WHERE storage_key = ?`, storageKey)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

func (r *CartRepo) Save(storageKey string, payload []byte) error {
	_, err := r.db.Exec(`
	  INSERT INTO carts(storage_key, payload, updated_at) VALUES(?,?,?)
	  ON CONFLICT(storage_key) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at
	`, storageKey, string(payload), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *CartRepo) Delete(storageKey string) error {
	_, err := r.db.Exec(`DELETE FROM carts WHERE storage_key = ?`, storageKey)
	return err
}
