package auth

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
	"github.com/courati/console/core/session"
)

type (
	Repository interface {
		Login(ctx context.Context, creds Credentials) (LoginResult, error)
		Logout(ctx context.Context) error
		Profile(ctx context.Context) (Profile, error)
		UpdateProfile(ctx context.Context, up UpdateProfile) (Profile, error)
		ChangePassword(ctx context.Context, cp ChangePassword) error
		Stats(ctx context.Context) (Stats, error)
	}

	Service struct {
		repo     Repository
		sessions session.Store
		validate *validator.Validate
		log      core.Logger
	}
)

func NewService(repo Repository, sessions session.Store, validate *validator.Validate, log core.Logger) *Service {
	return &Service{repo: repo, sessions: sessions, validate: validate, log: log}
}

// Login authenticates against the upstream API and opens a session holding
// the returned tokens and user blob. On failure the upstream error passes
// through untouched so the caller can surface the extracted message while
// keeping the submitted form intact; no session is created.
func (svc *Service) Login(ctx context.Context, creds Credentials) (session.Session, User, error) {
	if err := creds.Validate(svc.validate); err != nil {
		return session.Session{}, User{}, err
	}
	res, err := svc.repo.Login(ctx, creds)
	if err != nil {
		return session.Session{}, User{}, errors.Wrap(err, "logging in upstream")
	}
	blob, err := res.User.MarshalBlob()
	if err != nil {
		return session.Session{}, User{}, err
	}
	sess := session.New(res.Access, res.Refresh, blob)
	if err := svc.sessions.Create(ctx, sess); err != nil {
		return session.Session{}, User{}, errors.Wrap(err, "creating session")
	}
	return sess, res.User, nil
}

// Logout tells the upstream API best-effort, then unconditionally drops the
// session. A failing server-side logout is intentionally non-fatal.
func (svc *Service) Logout(ctx context.Context, sess session.Session) error {
	if err := svc.repo.Logout(ctx); err != nil {
		svc.log.Debug("upstream logout failed (ignored)", err)
	}
	return errors.Wrap(svc.sessions.Delete(ctx, sess.ID), "deleting session")
}

// Hydrate restores a session from the store. Missing or corrupt data clears
// the session and reports ErrNotAuthenticated; it never fails the request.
func (svc *Service) Hydrate(ctx context.Context, id string) (session.Session, User, error) {
	sess, err := svc.sessions.Get(ctx, id)
	if err != nil {
		if errors.Cause(err) == session.ErrNotFound {
			return session.Session{}, User{}, ErrNotAuthenticated
		}
		return session.Session{}, User{}, errors.Wrap(err, "getting session")
	}
	usr, err := UnmarshalBlob(sess.UserJSON)
	if err != nil {
		svc.log.Warn("dropping session with corrupt user blob", err)
		_ = svc.sessions.Delete(ctx, id)
		return session.Session{}, User{}, ErrNotAuthenticated
	}
	return sess, usr, nil
}

func (svc *Service) Profile(ctx context.Context) (Profile, error) {
	prof, err := svc.repo.Profile(ctx)
	return prof, errors.Wrap(err, "fetching profile")
}

// UpdateProfile patches the upstream profile and refreshes the session's
// cached user blob so the chrome shows the new identity right away.
func (svc *Service) UpdateProfile(ctx context.Context, sess session.Session, usr User, up UpdateProfile) (Profile, error) {
	if err := up.Validate(svc.validate); err != nil {
		return Profile{}, err
	}
	prof, err := svc.repo.UpdateProfile(ctx, up)
	if err != nil {
		return Profile{}, errors.Wrap(err, "updating profile")
	}
	if prof.Name != "" {
		usr.Name = prof.Name
	}
	if prof.Email != "" {
		usr.Email = prof.Email
	}
	if blob, mErr := usr.MarshalBlob(); mErr == nil {
		sess.UserJSON = blob
		if sErr := svc.sessions.Save(ctx, sess); sErr != nil {
			svc.log.Warn("saving refreshed user blob", sErr)
		}
	}
	return prof, nil
}

func (svc *Service) ChangePassword(ctx context.Context, cp ChangePassword) error {
	if err := cp.Validate(svc.validate); err != nil {
		return err
	}
	return errors.Wrap(svc.repo.ChangePassword(ctx, cp), "changing password")
}

func (svc *Service) Stats(ctx context.Context) (Stats, error) {
	stats, err := svc.repo.Stats(ctx)
	return stats, errors.Wrap(err, "fetching profile stats")
}
