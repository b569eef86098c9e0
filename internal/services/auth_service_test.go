package services_test

import (
	"testing"

	"motodealer/internal/repos"
	"motodealer/internal/services"
)

func TestLoginRejectsInactiveDealership(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	svc := &services.AuthService{Users: repos.NewUserRepo(db), Dealers: repos.NewDealershipRepo(db)}

	if _, err := svc.Login("sid-1", "admin@motostachira.test", "Passw0rd!"); err != nil {
		t.Fatalf("active tenant login failed: %v", err)
	}

	db.MustExec(`UPDATE dealerships SET is_active=0 WHERE id='d-tachira'`)

	if _, err := svc.Login("sid-2", "admin@motostachira.test", "Passw0rd!"); err != services.ErrInactive {
		t.Fatalf("want ErrInactive for deactivated tenant, got %v", err)
	}
	// The rejected attempt must not have bound a session.
	if u, _ := svc.CurrentUser("sid-2"); u != nil {
		t.Fatalf("session bound despite rejection: %+v", u)
	}
}
