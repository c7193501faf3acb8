// Package session owns the in-memory authentication state: restoring it from
// local storage at startup, driving login/register/logout against the API,
// and keeping the persisted token and user in step with what is in memory.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/poultrypro/poultryctl/internal/apperr"
	"github.com/poultrypro/poultryctl/pkg/client"
	"github.com/poultrypro/poultryctl/pkg/domain"
)

// API is the slice of the API client the controller drives. *client.Client
// satisfies it; tests substitute fakes.
type API interface {
	Login(ctx context.Context, email, password string) (*client.AuthResponse, error)
	Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResponse, error)
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context) (*client.AuthResponse, error)
	UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*client.Response[domain.User], error)
	SetAuthToken(token string)
	ClearAuthToken()
}

// Store is the slice of local storage the controller needs.
type Store interface {
	SetAuthToken(ctx context.Context, token string) error
	AuthToken(ctx context.Context) (string, bool)
	RemoveAuthToken(ctx context.Context) error
	SetUser(ctx context.Context, user *domain.User) error
	User(ctx context.Context) (*domain.User, bool)
	RemoveUser(ctx context.Context) error
	RemoveFarm(ctx context.Context) error
}

// State is a snapshot of the session. Loading is observable while an
// operation is in flight and is always false at rest.
type State struct {
	User          *domain.User
	Authenticated bool
	Loading       bool
	Err           string
}

// Controller coordinates the API client, the store, and the error classifier
// around a single session. Actions serialize on an internal mutex, so
// overlapping calls run one after another with last-writer-wins state.
type Controller struct {
	api   API
	store Store
	errs  *apperr.Classifier
	log   zerolog.Logger

	opMu sync.Mutex // serializes session actions

	stateMu sync.RWMutex
	state   State
	token   string
}

// New builds a Controller. Call Restore before anything else to pick up a
// persisted session.
func New(api API, store Store, errs *apperr.Classifier, log zerolog.Logger) *Controller {
	return &Controller{api: api, store: store, errs: errs, log: log}
}

// State returns a snapshot of the current session state.
func (c *Controller) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

func (c *Controller) setLoading() {
	c.stateMu.Lock()
	c.state.Loading = true
	c.state.Err = ""
	c.stateMu.Unlock()
}

// fail classifies err, records its message in state, and reports failure.
// The user field is left as it was.
func (c *Controller) fail(err error) bool {
	appErr := c.errs.Classify(err)
	c.stateMu.Lock()
	c.state.Loading = false
	c.state.Err = appErr.Message
	c.stateMu.Unlock()
	return false
}

// Restore loads a persisted session from the store. Both the token and the
// user must be present; anything less leaves the session unauthenticated.
func (c *Controller) Restore(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.setLoading()

	token, haveToken := c.store.AuthToken(ctx)
	user, haveUser := c.store.User(ctx)
	if !haveToken || !haveUser {
		c.setState(State{})
		return
	}

	c.api.SetAuthToken(token)
	c.stateMu.Lock()
	c.token = token
	c.state = State{User: user, Authenticated: true}
	c.stateMu.Unlock()
}

// Login authenticates with email and password. It reports success; on
// failure the classified message lands in State().Err.
func (c *Controller) Login(ctx context.Context, email, password string) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.setLoading()

	resp, err := c.api.Login(ctx, email, password)
	if err != nil {
		return c.fail(err)
	}
	if !resp.Success || resp.Data == nil || resp.Data.User == nil {
		return c.fail(authFailure(resp, "Login failed"))
	}
	return c.adopt(ctx, resp.Data.Token, resp.Data.User)
}

// Register creates an account and, like Login, adopts the returned session.
func (c *Controller) Register(ctx context.Context, req client.RegisterRequest) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.setLoading()

	resp, err := c.api.Register(ctx, req)
	if err != nil {
		return c.fail(err)
	}
	if !resp.Success || resp.Data == nil || resp.Data.User == nil {
		return c.fail(authFailure(resp, "Registration failed"))
	}
	return c.adopt(ctx, resp.Data.Token, resp.Data.User)
}

// adopt persists and applies a freshly issued token and user. Persistence
// failures count as operation failures: a session we cannot store is not one
// we pretend to have.
func (c *Controller) adopt(ctx context.Context, token string, user *domain.User) bool {
	if err := c.store.SetAuthToken(ctx, token); err != nil {
		return c.fail(err)
	}
	if err := c.store.SetUser(ctx, user); err != nil {
		return c.fail(err)
	}

	c.api.SetAuthToken(token)
	c.stateMu.Lock()
	c.token = token
	c.state = State{User: user, Authenticated: true}
	c.stateMu.Unlock()
	return true
}

// Logout terminates the session. The remote call is best-effort: local state
// and persisted records are wiped no matter what the server says, so a dead
// network can never pin a session open.
func (c *Controller) Logout(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.setLoading()
	c.logoutLocked(ctx)
}

// logoutLocked does the actual teardown. Callers hold opMu.
func (c *Controller) logoutLocked(ctx context.Context) {
	if err := c.api.Logout(ctx); err != nil {
		c.log.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
	}

	for _, remove := range []func(context.Context) error{
		c.store.RemoveAuthToken,
		c.store.RemoveUser,
		c.store.RemoveFarm,
	} {
		if err := remove(ctx); err != nil {
			c.log.Warn().Err(err).Msg("failed to clear persisted session record")
		}
	}

	c.api.ClearAuthToken()
	c.stateMu.Lock()
	c.token = ""
	c.state = State{}
	c.stateMu.Unlock()
}

// UpdateProfile applies a partial profile update. On success the new user
// record is persisted and replaces the in-memory one; on failure the current
// user is left untouched.
func (c *Controller) UpdateProfile(ctx context.Context, update client.ProfileUpdate) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.setLoading()

	resp, err := c.api.UpdateProfile(ctx, update)
	if err != nil {
		return c.fail(err)
	}
	if !resp.Success || resp.Data == nil {
		return c.fail(profileFailure(resp))
	}

	if err := c.store.SetUser(ctx, resp.Data); err != nil {
		return c.fail(err)
	}

	c.stateMu.Lock()
	c.state.User = resp.Data
	c.state.Loading = false
	c.state.Err = ""
	c.stateMu.Unlock()
	return true
}

// RefreshToken exchanges the current token for a fresh one. Any failure is
// unrecoverable for the session: the controller logs out and reports false.
func (c *Controller) RefreshToken(ctx context.Context) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.setLoading()

	resp, err := c.api.RefreshToken(ctx)
	if err != nil || !resp.Success || resp.Data == nil || resp.Data.Token == "" {
		c.logoutLocked(ctx)
		return false
	}

	token := resp.Data.Token
	if err := c.store.SetAuthToken(ctx, token); err != nil {
		c.log.Warn().Err(err).Msg("failed to persist refreshed token")
		c.logoutLocked(ctx)
		return false
	}

	c.api.SetAuthToken(token)
	c.stateMu.Lock()
	c.token = token
	c.state.Loading = false
	c.state.Err = ""
	c.stateMu.Unlock()
	return true
}

// ClearError drops the last operation's error message.
func (c *Controller) ClearError() {
	c.stateMu.Lock()
	c.state.Err = ""
	c.stateMu.Unlock()
}

// authFailure synthesizes an error for a success=false auth envelope so it
// flows through the same classification path as a thrown one.
func authFailure(resp *client.AuthResponse, fallback string) error {
	if resp.Message != "" {
		return errors.New(resp.Message)
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	return errors.New(fallback)
}

func profileFailure(resp *client.Response[domain.User]) error {
	if resp.Message != "" {
		return errors.New(resp.Message)
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	return errors.New("Profile update failed")
}
