package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"tunemates/internal/domain/user"
	"tunemates/internal/infrastructure/crypto"
	"tunemates/internal/shared/biztime"
	sharedConfig "tunemates/internal/shared/config"
	"tunemates/internal/shared/errors"
)

type fakeAppTokenStore struct {
	mu     sync.Mutex
	latest *AppTokenRecord
	saves  int
}

func (s *fakeAppTokenStore) Save(ctx context.Context, rec *AppTokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = rec
	s.saves++
	return nil
}

func (s *fakeAppTokenStore) Latest(ctx context.Context) (*AppTokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, nil
}

func (s *fakeAppTokenStore) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	updated *user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return nil, errors.NewNotFoundError("user not found")
}
func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, errors.NewNotFoundError("user not found")
}
func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	return nil, 0, nil
}
func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = u
	return nil
}
func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error { return nil }

func testEncryptor(t *testing.T) *crypto.Encryptor {
	t.Helper()
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))
	enc, err := crypto.NewEncryptor(key)
	require.NoError(t, err)
	return enc
}

// newTestTokenManager points both OAuth endpoints at a stub token server
// that counts exchanges.
func newTestTokenManager(t *testing.T, store *fakeAppTokenStore, users *fakeUserRepo) (*TokenManager, *atomic.Int32, func()) {
	t.Helper()

	var exchanges atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchanges.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "fresh-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))

	cfg := &sharedConfig.SpotifyConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/callback",
	}

	m := NewTokenManager(cfg, testEncryptor(t), store, users, testLogger())
	m.appCreds.TokenURL = server.URL
	m.oauth.Endpoint.TokenURL = server.URL

	return m, &exchanges, server.Close
}

func TestAppTokenExchangesAndCaches(t *testing.T) {
	store := &fakeAppTokenStore{}
	m, exchanges, cleanup := newTestTokenManager(t, store, &fakeUserRepo{})
	defer cleanup()

	token, err := m.AppToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, int32(1), exchanges.Load())
	assert.Equal(t, 1, store.saves)

	// Second call is served from the cache.
	token, err = m.AppToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, int32(1), exchanges.Load())
}

func TestAppTokenConcurrentColdCacheSharesOneExchange(t *testing.T) {
	store := &fakeAppTokenStore{}
	m, exchanges, cleanup := newTestTokenManager(t, store, &fakeUserRepo{})
	defer cleanup()

	const callers = 20
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = m.AppToken(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "fresh-token", tokens[i])
	}
	assert.Equal(t, int32(1), exchanges.Load())
}

func TestAppTokenReusesPersistedRow(t *testing.T) {
	enc := testEncryptor(t)
	encrypted, err := enc.Encrypt("persisted-token")
	require.NoError(t, err)

	store := &fakeAppTokenStore{latest: &AppTokenRecord{
		EncryptedToken: encrypted,
		CreatedAt:      biztime.NowUTC(),
		ExpiresAt:      biztime.NowUTC().Add(30 * time.Minute),
	}}

	m, exchanges, cleanup := newTestTokenManager(t, store, &fakeUserRepo{})
	defer cleanup()
	// Same key so the persisted row decrypts.
	m.encryptor = enc

	token, err := m.AppToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", token)
	assert.Equal(t, int32(0), exchanges.Load())
}

func TestAppTokenRefreshesInsideExpiryMargin(t *testing.T) {
	store := &fakeAppTokenStore{}
	m, exchanges, cleanup := newTestTokenManager(t, store, &fakeUserRepo{})
	defer cleanup()

	// A token with under a minute of life left must not be handed out.
	m.storeInCache(appTokenScope, "nearly-dead", biztime.NowUTC().Add(30*time.Second))

	token, err := m.AppToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, int32(1), exchanges.Load())
}

func TestAppTokenUnconfigured(t *testing.T) {
	m := NewTokenManager(&sharedConfig.SpotifyConfig{}, testEncryptor(t), &fakeAppTokenStore{}, &fakeUserRepo{}, testLogger())

	_, err := m.AppToken(context.Background())
	assert.Error(t, err)
}

func TestUserTokenDecryptsStoredToken(t *testing.T) {
	users := &fakeUserRepo{}
	m, exchanges, cleanup := newTestTokenManager(t, &fakeAppTokenStore{}, users)
	defer cleanup()

	u, err := user.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	encryptedAccess, err := m.encryptor.Encrypt("user-access")
	require.NoError(t, err)
	encryptedRefresh, err := m.encryptor.Encrypt("user-refresh")
	require.NoError(t, err)
	require.NoError(t, u.LinkSpotify(encryptedRefresh, encryptedAccess, biztime.NowUTC().Add(time.Hour)))

	token, err := m.UserToken(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "user-access", token)
	assert.Equal(t, int32(0), exchanges.Load())
}

func TestUserTokenRefreshesExpiredToken(t *testing.T) {
	users := &fakeUserRepo{}
	m, exchanges, cleanup := newTestTokenManager(t, &fakeAppTokenStore{}, users)
	defer cleanup()

	u, err := user.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	encryptedAccess, err := m.encryptor.Encrypt("stale-access")
	require.NoError(t, err)
	encryptedRefresh, err := m.encryptor.Encrypt("user-refresh")
	require.NoError(t, err)
	require.NoError(t, u.LinkSpotify(encryptedRefresh, encryptedAccess, biztime.NowUTC().Add(-time.Hour)))

	token, err := m.UserToken(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, int32(1), exchanges.Load())

	// The refreshed pair was written back to the user row.
	users.mu.Lock()
	defer users.mu.Unlock()
	require.NotNil(t, users.updated)
	stored, err := m.encryptor.Decrypt(users.updated.SpotifyAccessToken())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", stored)
}

func TestUserTokenWithoutLink(t *testing.T) {
	m, _, cleanup := newTestTokenManager(t, &fakeAppTokenStore{}, &fakeUserRepo{})
	defer cleanup()

	u, err := user.NewUser("bob", "bob@example.com", "hash")
	require.NoError(t, err)

	_, err = m.UserToken(context.Background(), u)
	require.Error(t, err)
	assert.True(t, errors.IsSpotifyAuthRequired(err))
}

func TestStoreUserTokenKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	users := &fakeUserRepo{}
	m, _, cleanup := newTestTokenManager(t, &fakeAppTokenStore{}, users)
	defer cleanup()

	u, err := user.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	encryptedAccess, err := m.encryptor.Encrypt("old-access")
	require.NoError(t, err)
	encryptedRefresh, err := m.encryptor.Encrypt("original-refresh")
	require.NoError(t, err)
	require.NoError(t, u.LinkSpotify(encryptedRefresh, encryptedAccess, biztime.NowUTC().Add(time.Hour)))

	err = m.StoreUserToken(context.Background(), u, &oauth2.Token{
		AccessToken: "new-access",
		Expiry:      biztime.NowUTC().Add(time.Hour),
	})
	require.NoError(t, err)

	refresh, err := m.encryptor.Decrypt(u.SpotifyRefreshToken())
	require.NoError(t, err)
	assert.Equal(t, "original-refresh", refresh)

	access, err := m.encryptor.Decrypt(u.SpotifyAccessToken())
	require.NoError(t, err)
	assert.Equal(t, "new-access", access)
}

func TestStoreUserTokenRotatesRefreshToken(t *testing.T) {
	users := &fakeUserRepo{}
	m, _, cleanup := newTestTokenManager(t, &fakeAppTokenStore{}, users)
	defer cleanup()

	u, err := user.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	encryptedAccess, err := m.encryptor.Encrypt("old-access")
	require.NoError(t, err)
	encryptedRefresh, err := m.encryptor.Encrypt("original-refresh")
	require.NoError(t, err)
	require.NoError(t, u.LinkSpotify(encryptedRefresh, encryptedAccess, biztime.NowUTC().Add(time.Hour)))

	err = m.StoreUserToken(context.Background(), u, &oauth2.Token{
		AccessToken:  "new-access",
		RefreshToken: "rotated-refresh",
		Expiry:       biztime.NowUTC().Add(time.Hour),
	})
	require.NoError(t, err)

	refresh, err := m.encryptor.Decrypt(u.SpotifyRefreshToken())
	require.NoError(t, err)
	assert.Equal(t, "rotated-refresh", refresh)
}
