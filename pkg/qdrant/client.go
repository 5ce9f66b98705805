package qdrant

import (
	"context"
	"fmt"
	"sync"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file defines a thin wrapper around the official Qdrant Go client,
// providing application-level operations for managing embeddings,
// collections, and similarity search.
//
// Responsibilities:
//   • Establish and validate connectivity with Qdrant.
//   • Bootstrap collections with cosine distance (create if missing).
//   • Upsert, delete, and search embeddings with synchronous visibility.
//   • Offer a safe API suitable for Fx dependency injection.
//

// Logger defines the logging operations the qdrant package needs. Any
// implementation conforming to these methods can be injected.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Client wraps the official Qdrant Go client and provides higher-level
// operations for working with embedding collections.
//
// The client is constructed once at startup and shared for the process's
// lifetime; there is no lazy initialization, so concurrent first callers
// always see a fully constructed handle.
type Client struct {
	api     *qdrant.Client
	cfg     Config
	logger  Logger
	started bool

	// dims caches collection name -> vector dimensionality, populated by
	// EnsureCollection and on first use. Writes and searches validate
	// against it without a server round trip.
	dims sync.Map
}

const defaultBatchSize = 200 // chunk size for batch upserts

// NewClient constructs a new Client and validates connectivity via a
// health check.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so this method
// performs an immediate health check to fail fast if the service is
// unreachable.
func NewClient(cfg Config, logger Logger) (*Client, error) {
	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	logger.Info("[Qdrant] connecting", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"port":     port,
	})

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w: %w", ErrIndexUnavailable, err)
	}

	c := &Client{
		api:     api,
		cfg:     cfg,
		logger:  logger,
		started: true,
	}

	if err := c.healthCheck(); err != nil {
		return nil, err
	}

	logger.Info("[Qdrant] client connected", nil)
	return c, nil
}

// healthCheck verifies the availability of the Qdrant service through the
// SDK. It is lightweight and fast, suitable for startup or readiness
// probes.
func (c *Client) healthCheck() error {
	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w: %w", ErrIndexUnavailable, err)
	}

	c.logger.Debug("[Qdrant] health check passed", nil, map[string]interface{}{
		"title":   resp.GetTitle(),
		"version": resp.GetVersion(),
	})
	return nil
}

// Close shuts down the underlying gRPC connection. Safe to call more
// than once.
func (c *Client) Close() {
	if !c.started {
		return
	}
	c.logger.Info("[Qdrant] closing client connection", nil)
	if err := c.api.Close(); err != nil {
		c.logger.Warn("[Qdrant] close failed", err)
	}
	c.started = false
}

// collectionDim returns the vector dimensionality of a collection,
// consulting the local cache first and falling back to a server lookup.
func (c *Client) collectionDim(ctx context.Context, collection string) (uint64, error) {
	if dim, ok := c.dims.Load(collection); ok {
		return dim.(uint64), nil
	}

	info, err := c.api.GetCollectionInfo(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("[Qdrant] failed to inspect collection '%s': %w: %w", collection, ErrIndexUnavailable, err)
	}

	dim := extractVectorSize(info)
	if dim == 0 {
		return 0, fmt.Errorf("[Qdrant] collection '%s' has no vector configuration", collection)
	}

	c.dims.Store(collection, dim)
	return dim, nil
}
