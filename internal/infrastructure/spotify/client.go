package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
)

const (
	apiBaseURL = "https://api.spotify.com/v1"

	// A 429 is retried once when Spotify asks us to wait at most this long.
	maxRetryAfter = 10 * time.Second
)

// Client is a thin Spotify Web API client. It is stateless with respect to
// authorization: every call takes the bearer token to use, so the same
// client serves both app-scoped and user-scoped requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	log        logger.Interface
}

// NewClient creates a client with a modest client-side request budget so a
// burst of proposals does not trip Spotify's limiter in the first place.
func NewClient(log logger.Interface) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    apiBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(10), 10),
		log:        log.Named("spotify"),
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(log logger.Interface, baseURL string) *Client {
	c := NewClient(log)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// doRequest performs an authenticated request, decoding the JSON response
// into result. On HTTP 429 with a short Retry-After it waits and retries
// once.
func (c *Client) doRequest(ctx context.Context, token, method, endpoint string, body, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	resp, err := c.send(ctx, token, method, endpoint, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if retryAfter <= 0 || retryAfter > maxRetryAfter {
			return errors.NewInternalError("spotify rate limited", fmt.Sprintf("retry-after %s exceeds retry budget", retryAfter))
		}

		c.log.Warnw("rate limited by spotify, retrying once", "retry_after", retryAfter.String())
		select {
		case <-time.After(retryAfter):
		case <-ctx.Done():
			return ctx.Err()
		}

		resp, err = c.send(ctx, token, method, endpoint, body)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return errors.NewSpotifyAuthRequiredError()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.NewInternalError(
			"spotify API error",
			fmt.Sprintf("%s %s: status %d: %s", method, endpoint, resp.StatusCode, payload),
		)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode spotify response: %w", err)
		}
	}

	return nil
}

func (c *Client) send(ctx context.Context, token, method, endpoint string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify request failed: %w", err)
	}
	return resp, nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// GetTrack retrieves a single track by ID.
func (c *Client) GetTrack(ctx context.Context, token, trackID string) (*Track, error) {
	var track Track
	endpoint := fmt.Sprintf("/tracks/%s", url.PathEscape(trackID))
	if err := c.doRequest(ctx, token, http.MethodGet, endpoint, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// SearchTracks searches the catalog for tracks. The limit is clamped to
// 1..50 and a negative offset is treated as zero.
func (c *Client) SearchTracks(ctx context.Context, token, query string, limit, offset int, market string) (*SearchResult, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	if market != "" {
		params.Set("market", market)
	}

	var result SearchResult
	if err := c.doRequest(ctx, token, http.MethodGet, "/search?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddToPlaylist inserts a track at the top of a playlist and returns the
// new snapshot ID.
func (c *Client) AddToPlaylist(ctx context.Context, token, playlistID, trackURI string) (string, error) {
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	body := map[string]interface{}{
		"uris":     []string{trackURI},
		"position": 0,
	}

	var snapshot SnapshotResponse
	if err := c.doRequest(ctx, token, http.MethodPost, endpoint, body, &snapshot); err != nil {
		return "", err
	}
	return snapshot.SnapshotID, nil
}

// Me retrieves the profile of the token's user.
func (c *Client) Me(ctx context.Context, token string) (*UserProfile, error) {
	var profile UserProfile
	if err := c.doRequest(ctx, token, http.MethodGet, "/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UserPlaylists retrieves a user's playlists with pagination.
func (c *Client) UserPlaylists(ctx context.Context, token, userID string, limit, offset int) (*PaginatedPlaylists, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	endpoint := fmt.Sprintf("/users/%s/playlists?limit=%d&offset=%d", url.PathEscape(userID), limit, offset)

	var response PaginatedPlaylists
	if err := c.doRequest(ctx, token, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
