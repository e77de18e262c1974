package dummyapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/courati/console/core/auth"
	"github.com/courati/console/upstream"
)

type AuthRepository struct {
	api *API

	// current mimics the upstream resolving the caller from the bearer
	// token; tests set it via SeedAccount / SwitchUser.
	current string
}

var _ auth.Repository = (*AuthRepository)(nil)

func NewAuthRepository(api *API) *AuthRepository {
	return &AuthRepository{api: api}
}

// SeedAccount registers a login and makes it the current caller.
func (repo *AuthRepository) SeedAccount(username, password string, usr auth.User) {
	repo.api.accounts.Lock()
	defer repo.api.accounts.Unlock()

	repo.api.accounts.table[username] = &account{
		password: password,
		user:     usr,
		profile: auth.Profile{
			ID:       usr.ID,
			Username: usr.Username,
			Email:    usr.Email,
			Name:     usr.Name,
			Role:     usr.Role,
		},
	}
	repo.current = username
}

func (repo *AuthRepository) SeedStats(username string, stats auth.Stats) {
	repo.api.accounts.Lock()
	defer repo.api.accounts.Unlock()

	if acc, ok := repo.api.accounts.table[username]; ok {
		acc.stats = stats
	}
}

func (repo *AuthRepository) SwitchUser(username string) { repo.current = username }

func (repo *AuthRepository) Login(ctx context.Context, creds auth.Credentials) (auth.LoginResult, error) {
	repo.api.accounts.RLock()
	defer repo.api.accounts.RUnlock()

	acc, ok := repo.api.accounts.table[creds.Username]
	if !ok || acc.password != creds.Password {
		return auth.LoginResult{}, &upstream.APIError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Nom d'utilisateur ou mot de passe incorrect.",
		}
	}
	repo.current = creds.Username
	return auth.LoginResult{
		Access:  "dummy-access-" + uuid.New().String(),
		Refresh: "dummy-refresh-" + uuid.New().String(),
		User:    acc.user,
	}, nil
}

func (repo *AuthRepository) Logout(ctx context.Context) error { return nil }

func (repo *AuthRepository) Profile(ctx context.Context) (auth.Profile, error) {
	repo.api.accounts.RLock()
	defer repo.api.accounts.RUnlock()

	acc, err := repo.caller()
	if err != nil {
		return auth.Profile{}, err
	}
	return acc.profile, nil
}

func (repo *AuthRepository) UpdateProfile(ctx context.Context, up auth.UpdateProfile) (auth.Profile, error) {
	repo.api.accounts.Lock()
	defer repo.api.accounts.Unlock()

	acc, err := repo.caller()
	if err != nil {
		return auth.Profile{}, err
	}
	if up.Name != "" {
		acc.profile.Name = up.Name
		acc.user.Name = up.Name
	}
	if up.Email != "" {
		acc.profile.Email = up.Email
		acc.user.Email = up.Email
	}
	if up.PhoneNumber != "" {
		acc.profile.PhoneNumber = up.PhoneNumber
	}
	return acc.profile, nil
}

func (repo *AuthRepository) ChangePassword(ctx context.Context, cp auth.ChangePassword) error {
	repo.api.accounts.Lock()
	defer repo.api.accounts.Unlock()

	acc, err := repo.caller()
	if err != nil {
		return err
	}
	if acc.password != cp.CurrentPassword {
		return badRequest("Le mot de passe actuel est incorrect.")
	}
	acc.password = cp.NewPassword
	return nil
}

func (repo *AuthRepository) Stats(ctx context.Context) (auth.Stats, error) {
	repo.api.accounts.RLock()
	defer repo.api.accounts.RUnlock()

	acc, err := repo.caller()
	if err != nil {
		return auth.Stats{}, err
	}
	return acc.stats, nil
}

func (repo *AuthRepository) caller() (*account, error) {
	acc, ok := repo.api.accounts.table[repo.current]
	if !ok {
		return nil, &upstream.APIError{
			StatusCode: http.StatusUnauthorized,
			Message:    fmt.Sprintf("Compte inconnu: %s", repo.current),
		}
	}
	return acc, nil
}
