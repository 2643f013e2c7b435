// Package backend provides the Shareloop admin API server.

// This package contains the main application entry point. The actual API
// documentation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all admin endpoints
// - internal/analytics: Dashboard counters, growth series, category shares
// - internal/auditlog: Append-only audit trail of privileged actions
// - internal/settings: Validated platform settings store
// - internal/models: Data models and database schemas
// - internal/auth: Token verification and the admin predicate
// - internal/database: Database connection and migrations
// - internal/middleware: HTTP middleware (auth, admin gate, rate limiting)
// - internal/cache: Redis client used by the rate limiter
// - internal/metrics: Prometheus instrumentation
// - internal/seed: Development data seeding

// See the individual package documentation for detailed API reference.
package backend
