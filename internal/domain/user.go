package domain

// User is a dashboard admin bound to one dealership.
type User struct {
	ID           string `db:"id"`
	DealershipID string `db:"dealership_id"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	Hash         string `db:"password_hash"`
}
