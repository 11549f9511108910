// Package igdb wraps the IGDB v4 API behind Twitch client-credential auth.
// Queries use the Apicalypse body format the API expects.
package igdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/mia-backend/internal/observability"
	"github.com/yungbote/mia-backend/internal/platform/httpx"
	"github.com/yungbote/mia-backend/internal/platform/logger"

	types "github.com/yungbote/mia-backend/internal/domain"
)

const (
	gameFields = "name,genres.name,themes.name,summary,rating,rating_count,first_release_date"

	// tokenExpiryBuffer refreshes the app token well before Twitch expires
	// it, so an in-flight query never races the expiry.
	tokenExpiryBuffer = 300 * time.Second
)

// Client is the IGDB surface the catalog service consumes.
type Client interface {
	SearchByName(ctx context.Context, name string, limit int) ([]types.Game, error)
	PopularGames(ctx context.Context, limit, offset int) ([]types.Game, error)
}

type client struct {
	log          *logger.Logger
	apiURL       string
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	maxRetries   int

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(log *logger.Logger) (Client, error) {
	clientID := strings.TrimSpace(os.Getenv("IGDB_CLIENT_ID"))
	clientSecret := strings.TrimSpace(os.Getenv("IGDB_CLIENT_SECRET"))
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("missing IGDB_CLIENT_ID or IGDB_CLIENT_SECRET")
	}

	apiURL := strings.TrimSpace(os.Getenv("IGDB_API_URL"))
	if apiURL == "" {
		apiURL = "https://api.igdb.com/v4"
	}
	tokenURL := strings.TrimSpace(os.Getenv("IGDB_TOKEN_URL"))
	if tokenURL == "" {
		tokenURL = "https://id.twitch.tv/oauth2/token"
	}

	timeoutSec := 30
	if v := strings.TrimSpace(os.Getenv("IGDB_TIMEOUT_SECONDS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	maxRetries := 3
	if v := strings.TrimSpace(os.Getenv("IGDB_MAX_RETRIES")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}

	return &client{
		log:          log.With("client", "igdb"),
		apiURL:       strings.TrimRight(apiURL, "/"),
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries:   maxRetries,
	}, nil
}

func (c *client) SearchByName(ctx context.Context, name string, limit int) ([]types.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("igdb: empty search term")
	}
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`search %q; fields %s; where rating_count > 10; limit %d;`, name, gameFields, limit)
	return c.queryGames(ctx, query)
}

func (c *client) PopularGames(ctx context.Context, limit, offset int) ([]types.Game, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`fields %s; where rating > 75 & rating_count > 50; sort rating desc; limit %d; offset %d;`, gameFields, limit, offset)
	return c.queryGames(ctx, query)
}

type rawGame struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Themes []struct {
		Name string `json:"name"`
	} `json:"themes"`
	Summary          string  `json:"summary"`
	Rating           float64 `json:"rating"`
	RatingCount      int     `json:"rating_count"`
	FirstReleaseDate int64   `json:"first_release_date"`
}

func (c *client) queryGames(ctx context.Context, query string) ([]types.Game, error) {
	raw, err := c.do(ctx, "/games", query)
	if err != nil {
		return nil, err
	}
	var rows []rawGame
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("igdb decode error: %w; raw=%s", err, string(raw))
	}
	return convertGames(rows), nil
}

// convertGames drops entries with no genre and no theme annotations; those
// carry nothing the analyzer or synthesizer can work with.
func convertGames(rows []rawGame) []types.Game {
	out := make([]types.Game, 0, len(rows))
	for _, r := range rows {
		if len(r.Genres) == 0 && len(r.Themes) == 0 {
			continue
		}
		g := types.Game{
			ID:               r.ID,
			Name:             r.Name,
			Genres:           make([]string, 0, len(r.Genres)),
			Themes:           make([]string, 0, len(r.Themes)),
			Summary:          r.Summary,
			Rating:           r.Rating,
			RatingCount:      r.RatingCount,
			FirstReleaseDate: r.FirstReleaseDate,
		}
		for _, gn := range r.Genres {
			g.Genres = append(g.Genres, gn.Name)
		}
		for _, th := range r.Themes {
			g.Themes = append(g.Themes, th.Name)
		}
		out = append(out, g)
	}
	return out
}

type igdbHTTPError struct {
	StatusCode int
	Body       string
}

func (e *igdbHTTPError) Error() string {
	return fmt.Sprintf("igdb http %d: %s", e.StatusCode, e.Body)
}

func (e *igdbHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpiryBuffer)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("igdb token request failed: %w", err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &igdbHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("igdb token decode error: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("igdb token response missing access_token")
	}
	c.accessToken = body.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	c.log.Debug("igdb token refreshed", "expires_in", body.ExpiresIn)
	return c.accessToken, nil
}

func (c *client) doOnce(ctx context.Context, path, query string) (*http.Response, []byte, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, bytes.NewBufferString(query))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// Token revoked ahead of its expiry; force a refresh on retry.
		c.mu.Lock()
		c.accessToken = ""
		c.mu.Unlock()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &igdbHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, path, query string) ([]byte, error) {
	backoff := 1 * time.Second
	start := time.Now()

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, path, query)
		if err == nil {
			if metrics := observability.Current(); metrics != nil {
				metrics.ObserveClientPerf("igdb", path, time.Since(start).Seconds())
			}
			return raw, nil
		}

		retryable := httpx.IsRetryableError(err)
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			retryable = true
		}
		if !retryable || attempt == c.maxRetries {
			if metrics := observability.Current(); metrics != nil {
				metrics.IncClientError("igdb")
			}
			return nil, err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("IGDB request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}

	return nil, fmt.Errorf("unreachable retry loop")
}
