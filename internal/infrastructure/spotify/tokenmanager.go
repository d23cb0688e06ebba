package spotify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	spotifyauth "golang.org/x/oauth2/spotify"
	"golang.org/x/sync/singleflight"

	"tunemates/internal/domain/user"
	"tunemates/internal/infrastructure/crypto"
	"tunemates/internal/shared/biztime"
	sharedConfig "tunemates/internal/shared/config"
	"tunemates/internal/shared/constants"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
)

const appTokenScope = "app"

var userScopes = []string{
	"playlist-read-private",
	"playlist-modify-public",
	"playlist-modify-private",
}

type cacheEntry struct {
	token     string
	expiresAt time.Time
}

func (e cacheEntry) valid(now time.Time) bool {
	return e.token != "" && e.expiresAt.After(now.Add(constants.TokenRefreshMargin))
}

// TokenManager hands out Spotify bearer tokens. App-scoped tokens (client
// credentials) are cached in memory and persisted encrypted; concurrent
// cold-cache callers of the same scope share a single exchange via
// singleflight while unrelated scopes never contend. Per-user tokens are
// refreshed from the user row on demand and not memory-cached.
type TokenManager struct {
	cfg       *sharedConfig.SpotifyConfig
	oauth     *oauth2.Config
	appCreds  *clientcredentials.Config
	encryptor *crypto.Encryptor
	tokens    AppTokenStore
	users     user.Repository
	log       logger.Interface

	mu    sync.Mutex
	cache map[string]cacheEntry
	group singleflight.Group
}

func NewTokenManager(
	cfg *sharedConfig.SpotifyConfig,
	encryptor *crypto.Encryptor,
	tokens AppTokenStore,
	users user.Repository,
	log logger.Interface,
) *TokenManager {
	return &TokenManager{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       userScopes,
			Endpoint:     spotifyauth.Endpoint,
		},
		appCreds: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     spotifyauth.Endpoint.TokenURL,
		},
		encryptor: encryptor,
		tokens:    tokens,
		users:     users,
		log:       log.Named("spotify.tokens"),
		cache:     make(map[string]cacheEntry),
	}
}

// AuthCodeURL builds the user authorization URL for the given state value.
func (m *TokenManager) AuthCodeURL(state string) string {
	return m.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCode trades an authorization code for a token pair.
func (m *TokenManager) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if !m.cfg.Configured() {
		return nil, errors.NewInternalError("spotify credentials not configured")
	}

	token, err := m.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, errors.NewSpotifyAuthRequiredError(fmt.Sprintf("code exchange failed: %v", err))
	}
	return token, nil
}

// AppToken returns a valid client-credentials token, fetching a new one
// only when neither the cache nor the persisted row has over a minute of
// life left.
func (m *TokenManager) AppToken(ctx context.Context) (string, error) {
	if !m.cfg.Configured() {
		return "", errors.NewInternalError("spotify credentials not configured")
	}

	now := biztime.NowUTC()

	m.mu.Lock()
	entry := m.cache[appTokenScope]
	m.mu.Unlock()
	if entry.valid(now) {
		return entry.token, nil
	}

	result, err, _ := m.group.Do(appTokenScope, func() (interface{}, error) {
		return m.fetchAppToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (m *TokenManager) fetchAppToken(ctx context.Context) (string, error) {
	now := biztime.NowUTC()

	// A winner of the singleflight race may have filled the cache already.
	m.mu.Lock()
	entry := m.cache[appTokenScope]
	m.mu.Unlock()
	if entry.valid(now) {
		return entry.token, nil
	}

	// The persisted row survives restarts.
	if rec, err := m.tokens.Latest(ctx); err == nil && rec != nil {
		if rec.ExpiresAt.After(now.Add(constants.TokenRefreshMargin)) {
			token, err := m.encryptor.Decrypt(rec.EncryptedToken)
			if err == nil {
				m.storeInCache(appTokenScope, token, rec.ExpiresAt)
				return token, nil
			}
			m.log.Warnw("failed to decrypt persisted app token, exchanging a new one", "error", err)
		}
	}

	token, err := m.appCreds.Token(ctx)
	if err != nil {
		return "", errors.NewInternalError("spotify token exchange failed", err.Error())
	}

	encrypted, err := m.encryptor.Encrypt(token.AccessToken)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt app token: %w", err)
	}

	rec := &AppTokenRecord{
		EncryptedToken: encrypted,
		CreatedAt:      biztime.NowUTC(),
		ExpiresAt:      token.Expiry,
	}
	if err := m.tokens.Save(ctx, rec); err != nil {
		// The token itself is still usable.
		m.log.Warnw("failed to persist app token", "error", err)
	}

	m.storeInCache(appTokenScope, token.AccessToken, token.Expiry)
	m.log.Infow("obtained new app token", "expires_at", token.Expiry)

	return token.AccessToken, nil
}

func (m *TokenManager) storeInCache(scope, token string, expiresAt time.Time) {
	m.mu.Lock()
	m.cache[scope] = cacheEntry{token: token, expiresAt: expiresAt}
	m.mu.Unlock()
}

// UserToken returns a valid access token acting on behalf of the user,
// refreshing via the stored refresh token when the persisted access token
// has under a minute left. The refreshed pair is written back to the user
// row.
func (m *TokenManager) UserToken(ctx context.Context, u *user.User) (string, error) {
	if !m.cfg.Configured() {
		return "", errors.NewInternalError("spotify credentials not configured")
	}
	if !u.HasSpotifyLink() {
		return "", errors.NewSpotifyAuthRequiredError()
	}

	now := biztime.NowUTC()
	if u.SpotifyTokenValid(now) {
		token, err := m.encryptor.Decrypt(u.SpotifyAccessToken())
		if err == nil {
			return token, nil
		}
		m.log.Warnw("failed to decrypt stored user token, refreshing", "user_id", u.ID(), "error", err)
	}

	refreshToken, err := m.encryptor.Decrypt(u.SpotifyRefreshToken())
	if err != nil {
		return "", errors.NewSpotifyAuthRequiredError("stored refresh token unreadable")
	}

	source := m.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return "", errors.NewSpotifyAuthRequiredError(fmt.Sprintf("refresh failed: %v", err))
	}

	if err := m.StoreUserToken(ctx, u, token); err != nil {
		m.log.Warnw("failed to persist refreshed user token", "user_id", u.ID(), "error", err)
	}

	return token.AccessToken, nil
}

// StoreUserToken encrypts a token pair onto the user row. A rotated
// refresh token replaces the stored one; an absent refresh token keeps it.
func (m *TokenManager) StoreUserToken(ctx context.Context, u *user.User, token *oauth2.Token) error {
	encryptedAccess, err := m.encryptor.Encrypt(token.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}

	if u.HasSpotifyLink() && token.RefreshToken == "" {
		u.UpdateSpotifyAccessToken(encryptedAccess, token.Expiry, "")
	} else {
		refresh := token.RefreshToken
		if refresh == "" {
			return errors.NewSpotifyAuthRequiredError("authorization response missing refresh token")
		}
		encryptedRefresh, err := m.encryptor.Encrypt(refresh)
		if err != nil {
			return fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
		if u.HasSpotifyLink() {
			u.UpdateSpotifyAccessToken(encryptedAccess, token.Expiry, encryptedRefresh)
		} else if err := u.LinkSpotify(encryptedRefresh, encryptedAccess, token.Expiry); err != nil {
			return err
		}
	}

	return m.users.Update(ctx, u)
}
