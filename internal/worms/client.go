package worms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/bbest/seagrass-dwc/internal/conf"
	"github.com/bbest/seagrass-dwc/internal/errors"
	"github.com/bbest/seagrass-dwc/internal/logging"
)

// Package-level logger specific to the worms service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "worms.log")
	serviceLevelVar.Set(slog.LevelDebug)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "worms", serviceLevelVar)
	if err != nil {
		// Fallback: Log error to standard log and disable service logging
		log.Printf("FATAL: Failed to initialize worms file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "worms")
		closeLogger = func() error { return nil }
	}
}

// Client provides methods for interacting with the WoRMS REST API
type Client struct {
	config      Config
	httpClient  *http.Client
	cache       *cache.Cache
	rateLimiter *time.Ticker
	mu          sync.Mutex
	lastRequest time.Time
	debug       bool

	// Metrics
	metrics struct {
		apiCalls      int64
		cacheHits     int64
		cacheMisses   int64
		apiErrors     int64
		totalDuration time.Duration
		mu            sync.RWMutex
	}
}

// NewClient creates a new WoRMS API client
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultConfig().CacheTTL
	}
	if config.RateLimitMS == 0 {
		config.RateLimitMS = DefaultConfig().RateLimitMS
	}

	// Get global debug setting
	settings := conf.GetSettings()
	debug := settings != nil && settings.Debug

	client := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		cache:       cache.New(config.CacheTTL, config.CacheTTL*2),
		rateLimiter: time.NewTicker(time.Duration(config.RateLimitMS) * time.Millisecond),
		debug:       debug,
	}

	logger.Info("WoRMS client initialized",
		"base_url", config.BaseURL,
		"cache_ttl", config.CacheTTL,
		"rate_limit_ms", config.RateLimitMS,
		"debug", debug)

	return client, nil
}

// Close cleans up client resources
func (c *Client) Close() {
	c.rateLimiter.Stop()
	logger.Info("Closing WoRMS client")

	if closeLogger != nil {
		logger.Debug("Closing WoRMS service log file")
		if err := closeLogger(); err != nil {
			// Use standard log since our logger might be closing
			log.Printf("Error closing WoRMS logger: %v", err)
		}
	}
}

// AphiaRecordByID retrieves the registry record for a taxon identifier.
// The record is cached per identifier; the pipeline needs it exactly once
// per run but the taxon subcommand may ask repeatedly.
func (c *Client) AphiaRecordByID(ctx context.Context, aphiaID int) (*AphiaRecord, error) {
	cacheKey := fmt.Sprintf("aphia:%d", aphiaID)

	// Check cache first
	if cached, found := c.cache.Get(cacheKey); found {
		if record, ok := cached.(*AphiaRecord); ok {
			c.metrics.mu.Lock()
			c.metrics.cacheHits++
			c.metrics.mu.Unlock()

			logger.Debug("WoRMS record cache hit",
				"cache_key", cacheKey,
				"aphia_id", aphiaID)
			return record, nil
		}
	}

	// Cache miss
	c.metrics.mu.Lock()
	c.metrics.cacheMisses++
	c.metrics.mu.Unlock()

	// Apply timeout to API request
	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/AphiaRecordByAphiaID/%d", c.config.BaseURL, aphiaID)

	var record AphiaRecord
	if err := c.doRequest(reqCtx, http.MethodGet, url, &record); err != nil {
		return nil, err
	}

	if record.AphiaID == 0 {
		return nil, errors.Newf("taxon not found: AphiaID %d", aphiaID).
			Category(errors.CategoryNotFound).
			Context("aphia_id", aphiaID).
			Component("worms").
			Build()
	}

	c.cache.Set(cacheKey, &record, cache.DefaultExpiration)

	logger.Info("WoRMS record resolved",
		"aphia_id", aphiaID,
		"scientific_name", record.ScientificName,
		"rank", record.Rank)

	return &record, nil
}

// doRequest performs an HTTP request with rate limiting. There is no retry
// loop: the pipeline is an offline batch transform, a failed lookup aborts
// the run rather than being papered over.
func (c *Client) doRequest(ctx context.Context, method, url string, result any) error {
	// Rate limiting
	c.mu.Lock()
	<-c.rateLimiter.C
	c.lastRequest = time.Now()
	c.mu.Unlock()

	start := time.Now()

	c.metrics.mu.Lock()
	c.metrics.apiCalls++
	c.metrics.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		c.trackError()
		return errors.Newf("failed to create HTTP request: %w", err).
			Category(errors.CategoryNetwork).
			Context("method", method).
			Context("url", url).
			Component("worms").
			Build()
	}
	req.Header.Set("Accept", "application/json")

	if c.debug {
		logger.Debug("WoRMS API request", "method", method, "url", url)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.trackError()
		logger.Error("WoRMS API request failed",
			"error", err,
			"method", method,
			"url", url)
		return errors.Newf("HTTP request failed: %w", err).
			Category(errors.CategoryNetwork).
			Context("method", method).
			Context("url", url).
			Component("worms").
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.trackError()
		logger.Error("Failed to read response body",
			"error", err,
			"url", url,
			"status_code", resp.StatusCode)
		return errors.Newf("failed to read response body: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", url).
			Context("status_code", resp.StatusCode).
			Component("worms").
			Build()
	}

	// WoRMS answers 204 with an empty body for an unknown AphiaID
	if resp.StatusCode == http.StatusNoContent {
		c.trackError()
		return errors.Newf("WoRMS returned no content for %s", url).
			Category(errors.CategoryNotFound).
			Context("url", url).
			Component("worms").
			Build()
	}

	if resp.StatusCode >= 400 {
		c.trackError()

		logger.Warn("WoRMS API error response",
			"status_code", resp.StatusCode,
			"url", url,
			"response_body", string(bodyBytes))

		return errors.Newf("WoRMS API error (status %d)", resp.StatusCode).
			Category(getErrorCategory(resp.StatusCode)).
			Context("status_code", resp.StatusCode).
			Context("url", url).
			Component("worms").
			Build()
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			responsePreview := string(bodyBytes)
			if len(responsePreview) > 500 {
				responsePreview = responsePreview[:500] + "..."
			}

			logger.Error("Failed to parse WoRMS API response",
				"error", err,
				"url", url,
				"response_size", len(bodyBytes),
				"response_preview", responsePreview)
			return errors.Newf("failed to parse response: %w", err).
				Category(errors.CategoryFileParsing).
				Context("url", url).
				Context("response_size", len(bodyBytes)).
				Component("worms").
				Build()
		}
	}

	duration := time.Since(start)

	if c.debug {
		logger.Debug("WoRMS API response",
			"status_code", resp.StatusCode,
			"url", url,
			"duration_ms", duration.Milliseconds(),
			"response_size", len(bodyBytes))
	} else {
		logger.Info("WoRMS API request successful",
			"url", url,
			"duration_ms", duration.Milliseconds())
	}

	c.metrics.mu.Lock()
	c.metrics.totalDuration += duration
	c.metrics.mu.Unlock()

	return nil
}

func (c *Client) trackError() {
	c.metrics.mu.Lock()
	c.metrics.apiErrors++
	c.metrics.mu.Unlock()
}

// ClearCache clears all cached data
func (c *Client) ClearCache() {
	c.cache.Flush()
	logger.Info("WoRMS cache cleared")
}

// Metrics represents WoRMS client performance metrics
type Metrics struct {
	APICalls      int64         `json:"api_calls"`
	CacheHits     int64         `json:"cache_hits"`
	CacheMisses   int64         `json:"cache_misses"`
	APIErrors     int64         `json:"api_errors"`
	TotalDuration time.Duration `json:"total_duration"`
	AvgDuration   time.Duration `json:"avg_duration"`
}

// GetMetrics returns current client metrics
func (c *Client) GetMetrics() Metrics {
	c.metrics.mu.RLock()
	defer c.metrics.mu.RUnlock()

	metrics := Metrics{
		APICalls:      c.metrics.apiCalls,
		CacheHits:     c.metrics.cacheHits,
		CacheMisses:   c.metrics.cacheMisses,
		APIErrors:     c.metrics.apiErrors,
		TotalDuration: c.metrics.totalDuration,
	}

	if metrics.APICalls > 0 {
		metrics.AvgDuration = time.Duration(int64(metrics.TotalDuration) / metrics.APICalls)
	}

	return metrics
}

// getErrorCategory determines the appropriate error category based on HTTP status code
func getErrorCategory(statusCode int) errors.ErrorCategory {
	switch statusCode {
	case 204, 404:
		// WoRMS answers 204 for an unknown AphiaID on some endpoints
		return errors.CategoryNotFound
	case 429:
		return errors.CategoryLimit
	default:
		return errors.CategoryNetwork
	}
}
