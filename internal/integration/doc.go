// Package integration holds end-to-end tests that run against real Postgres and RabbitMQ
// containers. Run them with `go test -tags integration ./internal/integration/...`.
package integration
