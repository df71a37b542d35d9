package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	headerAccessToken = "X-Shopify-Access-Token"
	shopDomainSuffix  = ".myshopify.com"

	// maxResponseSize bounds decoded bodies; real pages are far smaller.
	maxResponseSize = 10 << 20

	defaultTimeout = 30 * time.Second
)

// DefaultAPIVersions is the fallback ladder, newest first. Each version is
// tried once per fetch.
var DefaultAPIVersions = []string{"2023-10", "2023-07", "2023-04", "2023-01"}

// Config identifies one store connection.
type Config struct {
	// Store is the profile name, used in errors and logs.
	Store       string
	Domain      string
	Token       string
	APIVersions []string
	Timeout     time.Duration
}

func (c Config) Validate() error {
	if c.Domain == "" {
		return errors.New("shopify: store domain is required")
	}
	if c.Token == "" {
		return errors.New("shopify: access token is required")
	}
	return nil
}

// NormalizeDomain turns a user-supplied store domain into a base URL:
// strips any scheme and trailing slash, appends .myshopify.com when
// missing, and prefixes https.
func NormalizeDomain(domain string) string {
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimRight(domain, "/")
	if !strings.HasSuffix(domain, shopDomainSuffix) {
		domain += shopDomainSuffix
	}
	return "https://" + domain
}

// Client is a minimal Admin API client for one store: header-token auth,
// bounded timeouts, and the version ladder shared with the fetcher.
type Client struct {
	store    string
	baseURL  string
	token    string
	versions []string
	http     *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	versions := cfg.APIVersions
	if len(versions) == 0 {
		versions = DefaultAPIVersions
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		store:    cfg.Store,
		baseURL:  NormalizeDomain(cfg.Domain),
		token:    cfg.Token,
		versions: versions,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) endpoint(version, resource string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s.json", c.baseURL, version, resource)
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerAccessToken, c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Store: c.store, Err: err}
	}
	return resp, nil
}

func (c *Client) statusErr(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return &AuthError{Store: c.store, Status: status}
	case http.StatusForbidden:
		return &PermissionError{Store: c.store, Status: status}
	default:
		return &StatusError{Store: c.store, Status: status}
	}
}

// Ping probes the shop-info endpoint and returns the shop's display name.
func (c *Client) Ping(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, c.endpoint(c.versions[0], "shop"))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.statusErr(resp.StatusCode)
	}

	var payload struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&payload); err != nil {
		return "", fmt.Errorf("store %q: decode shop info: %w", c.store, err)
	}
	return payload.Shop.Name, nil
}
