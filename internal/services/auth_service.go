package services

import (
	"errors"

	"motodealer/internal/domain"
	"motodealer/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds = errors.New("invalid email or password")
	ErrInactive = errors.New("dealership is inactive")
)

type AuthService struct {
	Users   *repos.UserRepo
	Dealers *repos.DealershipRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	// Admins of a deactivated tenant lose dashboard access along with the
	// public storefront.
	d, err := s.Dealers.ByID(u.DealershipID)
	if err != nil || !d.IsActive {
		return nil, ErrInactive
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
