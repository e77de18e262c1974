// Package restapi implements the core repositories over the Courati core
// REST API, one file per resource. Every read goes through the upstream
// unwrap helpers with the candidate envelope keys of its endpoint.
package restapi

import (
	"context"

	"github.com/pkg/errors"

	"github.com/courati/console/core/auth"
	"github.com/courati/console/upstream"
)

const (
	loginPath          = "/api/auth/login/"
	logoutPath         = "/api/auth/logout/"
	profilePath        = "/api/auth/web/profile/"
	changePasswordPath = "/api/auth/web/profile/change-password/"
	profileStatsPath   = "/api/auth/web/profile/stats/"
)

type AuthRepository struct {
	client *upstream.Client
}

var _ auth.Repository = (*AuthRepository)(nil)

func NewAuthRepository(client *upstream.Client) *AuthRepository {
	return &AuthRepository{client: client}
}

func (repo *AuthRepository) Login(ctx context.Context, creds auth.Credentials) (auth.LoginResult, error) {
	body, err := repo.client.PostAnon(ctx, loginPath, creds)
	if err != nil {
		return auth.LoginResult{}, err
	}
	var res auth.LoginResult
	if err := upstream.UnmarshalObject(body, &res, "data"); err != nil {
		return auth.LoginResult{}, err
	}
	if res.Access == "" || res.Refresh == "" {
		return auth.LoginResult{}, errors.New("login response missing tokens")
	}
	return res, nil
}

func (repo *AuthRepository) Logout(ctx context.Context) error {
	_, err := repo.client.Post(ctx, logoutPath, nil)
	return err
}

func (repo *AuthRepository) Profile(ctx context.Context) (auth.Profile, error) {
	body, err := repo.client.Get(ctx, profilePath, nil)
	if err != nil {
		return auth.Profile{}, err
	}
	var prof auth.Profile
	err = upstream.UnmarshalObject(body, &prof, "profile", "user", "data")
	return prof, err
}

func (repo *AuthRepository) UpdateProfile(ctx context.Context, up auth.UpdateProfile) (auth.Profile, error) {
	body, err := repo.client.Patch(ctx, profilePath, up)
	if err != nil {
		return auth.Profile{}, err
	}
	var prof auth.Profile
	err = upstream.UnmarshalObject(body, &prof, "profile", "user", "data")
	return prof, err
}

func (repo *AuthRepository) ChangePassword(ctx context.Context, cp auth.ChangePassword) error {
	_, err := repo.client.Post(ctx, changePasswordPath, cp)
	return err
}

func (repo *AuthRepository) Stats(ctx context.Context) (auth.Stats, error) {
	body, err := repo.client.Get(ctx, profileStatsPath, nil)
	if err != nil {
		return auth.Stats{}, err
	}
	var stats auth.Stats
	err = upstream.UnmarshalObject(body, &stats, "stats", "data")
	return stats, err
}
