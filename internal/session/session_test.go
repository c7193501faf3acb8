package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poultrypro/poultryctl/internal/apperr"
	"github.com/poultrypro/poultryctl/pkg/client"
	"github.com/poultrypro/poultryctl/pkg/domain"
)

type fakeAPI struct {
	loginResp    *client.AuthResponse
	loginErr     error
	registerResp *client.AuthResponse
	registerErr  error
	logoutErr    error
	refreshResp  *client.AuthResponse
	refreshErr   error
	updateResp   *client.Response[domain.User]
	updateErr    error

	token   string
	cleared bool
}

func (f *fakeAPI) Login(context.Context, string, string) (*client.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Register(context.Context, client.RegisterRequest) (*client.AuthResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeAPI) Logout(context.Context) error { return f.logoutErr }

func (f *fakeAPI) RefreshToken(context.Context) (*client.AuthResponse, error) {
	return f.refreshResp, f.refreshErr
}

func (f *fakeAPI) UpdateProfile(context.Context, client.ProfileUpdate) (*client.Response[domain.User], error) {
	return f.updateResp, f.updateErr
}

func (f *fakeAPI) SetAuthToken(token string) { f.token = token }
func (f *fakeAPI) ClearAuthToken()           { f.token = ""; f.cleared = true }

type fakeStore struct {
	token       string
	hasToken    bool
	user        *domain.User
	hasFarm     bool
	setTokenErr error
	setUserErr  error
}

func (f *fakeStore) SetAuthToken(_ context.Context, token string) error {
	if f.setTokenErr != nil {
		return f.setTokenErr
	}
	f.token, f.hasToken = token, true
	return nil
}

func (f *fakeStore) AuthToken(context.Context) (string, bool) { return f.token, f.hasToken }

func (f *fakeStore) RemoveAuthToken(context.Context) error {
	f.token, f.hasToken = "", false
	return nil
}

func (f *fakeStore) SetUser(_ context.Context, user *domain.User) error {
	if f.setUserErr != nil {
		return f.setUserErr
	}
	f.user = user
	return nil
}

func (f *fakeStore) User(context.Context) (*domain.User, bool) { return f.user, f.user != nil }

func (f *fakeStore) RemoveUser(context.Context) error {
	f.user = nil
	return nil
}

func (f *fakeStore) RemoveFarm(context.Context) error {
	f.hasFarm = false
	return nil
}

func newController(api *fakeAPI, store *fakeStore) *Controller {
	return New(api, store, apperr.New(zerolog.Nop()), zerolog.Nop())
}

func authOK(token string, user *domain.User) *client.AuthResponse {
	return &client.AuthResponse{Success: true, Data: &client.AuthData{Token: token, User: user}}
}

func TestRestore(t *testing.T) {
	api := &fakeAPI{}
	store := &fakeStore{token: "tok", hasToken: true, user: &domain.User{ID: "u1", Role: domain.RoleFarmer}}
	c := newController(api, store)

	c.Restore(context.Background())

	state := c.State()
	assert.True(t, state.Authenticated)
	assert.False(t, state.Loading)
	require.NotNil(t, state.User)
	assert.Equal(t, "u1", state.User.ID)
	assert.Equal(t, "tok", api.token)
}

func TestRestore_MissingUser(t *testing.T) {
	api := &fakeAPI{}
	store := &fakeStore{token: "tok", hasToken: true} // token but no user
	c := newController(api, store)

	c.Restore(context.Background())

	state := c.State()
	assert.False(t, state.Authenticated)
	assert.Empty(t, api.token)
}

func TestLogin(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "a@b.example", Role: domain.RoleFarmer}
	api := &fakeAPI{loginResp: authOK("tok-1", user)}
	store := &fakeStore{}
	c := newController(api, store)

	ok := c.Login(context.Background(), "a@b.example", "secret")

	require.True(t, ok)
	state := c.State()
	assert.True(t, state.Authenticated)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	assert.Equal(t, "tok-1", store.token)
	assert.Equal(t, user, store.user)
	assert.Equal(t, "tok-1", api.token)
}

func TestLogin_EnvelopeFailure(t *testing.T) {
	api := &fakeAPI{loginResp: &client.AuthResponse{Success: false, Message: "Account disabled"}}
	c := newController(api, &fakeStore{})

	ok := c.Login(context.Background(), "a@b.example", "secret")

	assert.False(t, ok)
	state := c.State()
	assert.False(t, state.Authenticated)
	assert.False(t, state.Loading)
	assert.Equal(t, "Account disabled", state.Err)
}

func TestLogin_BadCredentials(t *testing.T) {
	api := &fakeAPI{loginErr: &client.HTTPError{StatusCode: 401, Message: "invalid credentials"}}
	store := &fakeStore{}
	c := newController(api, store)

	ok := c.Login(context.Background(), "a@b.example", "wrong")

	assert.False(t, ok)
	state := c.State()
	assert.False(t, state.Authenticated)
	assert.Equal(t, "Invalid email or password. Please try again.", state.Err)
	assert.Empty(t, store.token)
}

func TestLogin_PersistFailure(t *testing.T) {
	user := &domain.User{ID: "u1"}
	api := &fakeAPI{loginResp: authOK("tok-1", user)}
	store := &fakeStore{setTokenErr: errors.New("disk full")}
	c := newController(api, store)

	ok := c.Login(context.Background(), "a@b.example", "secret")

	assert.False(t, ok)
	assert.False(t, c.State().Authenticated)
}

func TestRegister(t *testing.T) {
	user := &domain.User{ID: "u2", Role: domain.RoleSupplier}
	api := &fakeAPI{registerResp: authOK("tok-2", user)}
	store := &fakeStore{}
	c := newController(api, store)

	ok := c.Register(context.Background(), client.RegisterRequest{Email: "s@b.example"})

	require.True(t, ok)
	assert.True(t, c.State().Authenticated)
	assert.True(t, c.IsSupplier())
}

func TestLogout_ClearsLocalStateEvenWhenRemoteFails(t *testing.T) {
	user := &domain.User{ID: "u1"}
	api := &fakeAPI{loginResp: authOK("tok-1", user), logoutErr: errors.New("network down")}
	store := &fakeStore{hasFarm: true}
	c := newController(api, store)
	require.True(t, c.Login(context.Background(), "a@b.example", "secret"))

	c.Logout(context.Background())

	state := c.State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
	assert.False(t, state.Loading)
	assert.False(t, store.hasToken)
	assert.Nil(t, store.user)
	assert.False(t, store.hasFarm)
	assert.True(t, api.cleared)
}

func TestUpdateProfile(t *testing.T) {
	oldUser := &domain.User{ID: "u1", Name: "Old"}
	newUser := domain.User{ID: "u1", Name: "New"}
	api := &fakeAPI{
		loginResp:  authOK("tok-1", oldUser),
		updateResp: &client.Response[domain.User]{Success: true, Data: &newUser},
	}
	store := &fakeStore{}
	c := newController(api, store)
	require.True(t, c.Login(context.Background(), "a@b.example", "secret"))

	ok := c.UpdateProfile(context.Background(), client.ProfileUpdate{Name: "New"})

	require.True(t, ok)
	assert.Equal(t, "New", c.State().User.Name)
	assert.Equal(t, "New", store.user.Name)
}

func TestUpdateProfile_FailureKeepsUser(t *testing.T) {
	oldUser := &domain.User{ID: "u1", Name: "Old"}
	api := &fakeAPI{
		loginResp: authOK("tok-1", oldUser),
		updateErr: &client.HTTPError{StatusCode: 500, Message: "oops"},
	}
	c := newController(api, &fakeStore{})
	require.True(t, c.Login(context.Background(), "a@b.example", "secret"))

	ok := c.UpdateProfile(context.Background(), client.ProfileUpdate{Name: "New"})

	assert.False(t, ok)
	state := c.State()
	assert.Equal(t, "Old", state.User.Name)
	assert.NotEmpty(t, state.Err)
	assert.True(t, state.Authenticated)
}

func TestRefreshToken(t *testing.T) {
	user := &domain.User{ID: "u1"}
	api := &fakeAPI{
		loginResp:   authOK("tok-1", user),
		refreshResp: authOK("tok-2", user),
	}
	store := &fakeStore{}
	c := newController(api, store)
	require.True(t, c.Login(context.Background(), "a@b.example", "secret"))

	ok := c.RefreshToken(context.Background())

	require.True(t, ok)
	assert.Equal(t, "tok-2", store.token)
	assert.Equal(t, "tok-2", api.token)
	assert.True(t, c.State().Authenticated)
}

func TestRefreshToken_FailureForcesLogout(t *testing.T) {
	user := &domain.User{ID: "u1"}
	api := &fakeAPI{
		loginResp:  authOK("tok-1", user),
		refreshErr: &client.HTTPError{StatusCode: 401, Message: "token expired"},
	}
	store := &fakeStore{}
	c := newController(api, store)
	require.True(t, c.Login(context.Background(), "a@b.example", "secret"))

	ok := c.RefreshToken(context.Background())

	assert.False(t, ok)
	state := c.State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
	assert.False(t, store.hasToken)
	assert.True(t, api.cleared)
}

func TestClearError(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("boom")}
	c := newController(api, &fakeStore{})

	c.Login(context.Background(), "a@b.example", "secret")
	require.NotEmpty(t, c.State().Err)

	c.ClearError()
	assert.Empty(t, c.State().Err)
}

func TestHasRole(t *testing.T) {
	user := &domain.User{ID: "u1", Role: domain.RoleVeterinarian}
	api := &fakeAPI{loginResp: authOK("tok", user)}
	c := newController(api, &fakeStore{})

	assert.False(t, c.IsVeterinarian()) // not authenticated yet

	require.True(t, c.Login(context.Background(), "v@b.example", "secret"))
	assert.True(t, c.IsVeterinarian())
	assert.False(t, c.IsFarmer())
	assert.False(t, c.IsSupplier())
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestTokenExpiringSoon(t *testing.T) {
	user := &domain.User{ID: "u1"}

	t.Run("far from expiry", func(t *testing.T) {
		api := &fakeAPI{loginResp: authOK(signedToken(t, time.Now().Add(48*time.Hour)), user)}
		c := newController(api, &fakeStore{})
		require.True(t, c.Login(context.Background(), "a@b.example", "secret"))
		assert.False(t, c.TokenExpiringSoon(time.Hour))
	})

	t.Run("inside the window", func(t *testing.T) {
		api := &fakeAPI{loginResp: authOK(signedToken(t, time.Now().Add(10*time.Minute)), user)}
		c := newController(api, &fakeStore{})
		require.True(t, c.Login(context.Background(), "a@b.example", "secret"))
		assert.True(t, c.TokenExpiringSoon(time.Hour))
	})

	t.Run("opaque token", func(t *testing.T) {
		api := &fakeAPI{loginResp: authOK("not-a-jwt", user)}
		c := newController(api, &fakeStore{})
		require.True(t, c.Login(context.Background(), "a@b.example", "secret"))
		assert.False(t, c.TokenExpiringSoon(time.Hour))
	})

	t.Run("no session", func(t *testing.T) {
		c := newController(&fakeAPI{}, &fakeStore{})
		assert.False(t, c.TokenExpiringSoon(time.Hour))
	})
}
