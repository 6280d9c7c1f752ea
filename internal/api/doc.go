// Package api serves the regional endpoint of a failover topology: the
// health route polled by the DNS health check, a read-only view of the
// region's slice of the topology, and Prometheus metrics. Business routes
// are mounted by the compute layer.
package api
