// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics registers the service's Prometheus collectors.

Counters cover registrations, proposal creation, votes cast, votes
rejected (labelled by reason) and store failures. The router exposes
them at GET /metrics.
*/
package metrics
