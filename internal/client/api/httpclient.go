package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/tommieseals/asset-tracker/internal/client/credentials"
	"github.com/tommieseals/asset-tracker/internal/client/models"
	"github.com/tommieseals/asset-tracker/internal/common"
	"github.com/tommieseals/asset-tracker/internal/logging"
)

const refreshPath = "/api/users/refresh"

// HTTPClient talks JSON over HTTP to the Asset Tracker service.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	creds   credentials.Repository
	log     logging.Logger

	// refreshGroup collapses concurrent refresh attempts into one exchange.
	refreshGroup singleflight.Group
}

func NewHTTPClient(baseURL string, timeout time.Duration, creds credentials.Repository, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: timeout,
		creds:   creds,
		log:     log.With("component", "api"),
	}
}

// attempt describes one dispatch of a logical request. A replay after a
// token refresh gets a fresh descriptor with retried set, so retry state
// never lives on a shared request object.
type attempt struct {
	method  string
	path    string
	body    []byte
	retried bool
}

// do runs a request through the pipeline: dispatch, and on token rejection
// refresh once and replay. A second rejection propagates unchanged; any
// non-authentication failure is returned without retry.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	body, err := encodeBody(in)
	if err != nil {
		return err
	}

	err = c.dispatch(ctx, attempt{method: method, path: path, body: body}, out)
	if !errors.Is(err, common.ErrUnauthorized) {
		return err
	}

	if err := c.refreshCredentials(ctx); err != nil {
		return err
	}

	return c.dispatch(ctx, attempt{method: method, path: path, body: body, retried: true}, out)
}

// dispatch performs a single HTTP round trip for the given attempt,
// attaching the stored access token when present.
func (c *HTTPClient) dispatch(ctx context.Context, a attempt, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if a.body != nil {
		reader = bytes.NewReader(a.body)
	}

	req, err := http.NewRequestWithContext(ctx, a.method, c.baseURL+a.path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	pair, err := c.creds.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	if pair != nil {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+pair.AccessToken)
	}

	requestID := uuid.NewString()
	c.log.Debug(ctx, "request", "id", requestID, "method", a.method, "path", a.path, "retried", a.retried)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "transport failure", "id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w", a.method, a.path, common.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	detail := readDetail(resp.Body)
	c.log.Debug(ctx, "request rejected", "id", requestID, "status", resp.StatusCode, "detail", detail)
	return mapStatus(resp.StatusCode, detail)
}

// refreshCredentials exchanges the refresh token for a new pair and stores
// it. All concurrent callers share a single exchange; each observes the same
// outcome. Any failure clears the stored pair: the session cannot be
// recovered without signing in again.
func (c *HTTPClient) refreshCredentials(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		pair, err := c.creds.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials: %w", err)
		}
		if pair == nil {
			return nil, fmt.Errorf("%w: no refresh token", common.ErrSessionExpired)
		}

		var token tokenResponse
		if err := c.exchangeRefreshToken(ctx, pair.RefreshToken, &token); err != nil {
			if clearErr := c.creds.Clear(ctx); clearErr != nil {
				c.log.Error(ctx, "failed to clear credentials", "error", clearErr)
			}
			return nil, fmt.Errorf("%w: %v", common.ErrSessionExpired, err)
		}

		newPair := credentials.Pair{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}
		if err := c.creds.Set(ctx, newPair); err != nil {
			return nil, fmt.Errorf("failed to store credentials: %w", err)
		}

		c.log.Info(ctx, "credentials refreshed")
		return nil, nil
	})
	return err
}

// exchangeRefreshToken performs the refresh exchange itself. It bypasses the
// pipeline: the exchange is never authenticated with the access token and
// never retried.
func (c *HTTPClient) exchangeRefreshToken(ctx context.Context, refreshToken string, out *tokenResponse) error {
	body, err := encodeBody(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("refresh exchange: %w", common.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mapStatus(resp.StatusCode, readDetail(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	return nil
}

func encodeBody(in any) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return b, nil
}

// readDetail extracts the error message from a FastAPI-style
// {"detail": "..."} body. Best effort: a missing or malformed body reads
// as empty.
func readDetail(r io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}

func mapStatus(code int, detail string) error {
	if detail == "" {
		detail = http.StatusText(code)
	}
	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, detail)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrForbidden, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", common.ErrValidation, detail)
	default:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, detail)
	}
}

/*************
 * Wire types
 *************/

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Assets              []models.Asset `json:"assets"`
	Total               int            `json:"total"`
	QueryInterpretation *string        `json:"query_interpretation,omitempty"`
}

type checkOutRequest struct {
	UserID int64  `json:"user_id"`
	Notes  string `json:"notes,omitempty"`
}

type checkInRequest struct {
	Notes string `json:"notes"`
}

/*************
 * Operations
 *************/

// Login exchanges username/password for a token pair and stores it. Like
// the refresh exchange, it sits outside the retry rule: a 401 here means
// bad credentials, not an expired token.
func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	body, err := encodeBody(loginRequest{Username: username, Password: password})
	if err != nil {
		return err
	}

	var token tokenResponse
	if err := c.dispatch(ctx, attempt{method: http.MethodPost, path: "/api/users/login", body: body, retried: true}, &token); err != nil {
		return err
	}

	return c.creds.Set(ctx, credentials.Pair{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken})
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/api/assets/dashboard", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *HTTPClient) ListAssets(ctx context.Context, category string) ([]models.Asset, error) {
	path := "/api/assets/"
	if category != "" {
		params := url.Values{}
		params.Set("category", category)
		path += "?" + params.Encode()
	}

	var assets []models.Asset
	if err := c.do(ctx, http.MethodGet, path, nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (c *HTTPClient) GetAsset(ctx context.Context, id int64) (*models.Asset, error) {
	var asset models.Asset
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/assets/%d", id), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *HTTPClient) GetAssetByTag(ctx context.Context, tag string) (*models.Asset, error) {
	var asset models.Asset
	if err := c.do(ctx, http.MethodGet, "/api/assets/tag/"+url.PathEscape(tag), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *HTTPClient) SearchAssets(ctx context.Context, query string) ([]models.Asset, error) {
	var result searchResponse
	if err := c.do(ctx, http.MethodPost, "/api/search/ai", searchRequest{Query: query}, &result); err != nil {
		return nil, err
	}
	return result.Assets, nil
}

func (c *HTTPClient) CheckOutAsset(ctx context.Context, id, userID int64, notes string) (*models.Asset, error) {
	var asset models.Asset
	path := fmt.Sprintf("/api/assets/%d/checkout", id)
	if err := c.do(ctx, http.MethodPost, path, checkOutRequest{UserID: userID, Notes: notes}, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *HTTPClient) CheckInAsset(ctx context.Context, id int64, notes string) (*models.Asset, error) {
	var asset models.Asset
	path := fmt.Sprintf("/api/assets/%d/checkin", id)
	if err := c.do(ctx, http.MethodPost, path, checkInRequest{Notes: notes}, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}
