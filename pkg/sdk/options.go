package productindex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL string
	apiKey  string

	oauthClientID     string
	oauthClientSecret string
	oauthTokenURL     string

	timeout time.Duration
	rps     float64
	burst   int

	corpusName        string
	corpusDescription string
	keyPrefix         string
	extensions        []string

	settleDelay  time.Duration
	pollInterval time.Duration
	pollMaxWait  time.Duration
	poll         bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithAPIKey authenticates with a Vectara API key.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithOAuth authenticates with OAuth2 client credentials. Takes precedence over WithAPIKey.
func WithOAuth(clientID, clientSecret, tokenURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.oauthClientID = clientID
		c.oauthClientSecret = clientSecret
		c.oauthTokenURL = tokenURL
	})
}

// WithBaseURL overrides the Vectara API endpoint.
func WithBaseURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = url
	})
}

// WithTimeout sets the connect, read and write timeouts.
// Default: 60s each.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRateLimit limits outgoing API requests.
func WithRateLimit(requestsPerSec float64, burst int) Option {
	return optionFunc(func(c *clientConfig) {
		c.rps = requestsPerSec
		c.burst = burst
	})
}

// WithCorpus sets the corpus display name and the key prefix used when recreating it.
func WithCorpus(name, keyPrefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpusName = name
		c.keyPrefix = keyPrefix
	})
}

// WithCorpusDescription sets the description of recreated corpora.
func WithCorpusDescription(desc string) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpusDescription = desc
	})
}

// WithExtensions sets the file extensions uploaded by Sync (without dots).
// Default: pdf, doc, docx.
func WithExtensions(exts ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.extensions = exts
	})
}

// WithSettleDelay sets the fixed wait after each corpus delete.
// Default: 20s.
func WithSettleDelay(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.settleDelay = d
		c.poll = false
	})
}

// WithSettlePolling waits after a delete by polling until the corpus is no longer listed.
func WithSettlePolling(interval, maxWait time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.pollInterval = interval
		c.pollMaxWait = maxWait
		c.poll = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
