package api

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTimeout is the per-request timeout of the underlying http.Client
const DefaultTimeout = 30 * time.Second

// Client представляет HTTP клиент для взаимодействия с сервером.
// Один экземпляр на процесс: он подставляет токен, обновляет его по 401
// и нормализует ответы.
type Client struct {
	creds      Credentials
	nav        Navigator
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	refreshes  singleflight.Group
	listeners  []func()
	mu         sync.RWMutex
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger used for request logging
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTransport replaces the base transport wrapped by request logging
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithNavigator sets the navigator redirected on forced logout
func WithNavigator(nav Navigator) Option {
	return func(c *Client) {
		c.nav = nav
	}
}

// NewClient создает новый API клиент.
// baseURL includes the /api prefix, e.g. http://localhost:8000/api
func NewClient(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		logger:  slog.New(slog.DiscardHandler),
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: http.DefaultTransport,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient.Transport = newLoggingTransport(c.httpClient.Transport, c.logger)

	return c
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetNavigator replaces the navigator after construction
func (c *Client) SetNavigator(nav Navigator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav = nav
}

// OnSessionEnd registers fn to run after the pipeline forces a logout
func (c *Client) OnSessionEnd(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Client) navigator() Navigator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nav
}

func (c *Client) sessionListeners() []func() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]func(){}, c.listeners...)
}
