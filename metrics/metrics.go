// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "coursevote",
		Subsystem: "accounts",
		Name:      "registrations_total",
		Help:      "Successful user registrations",
	})

	ProposalsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "coursevote",
		Subsystem: "proposals",
		Name:      "created_total",
		Help:      "Proposals created",
	})

	VotesCast = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "coursevote",
		Subsystem: "votes",
		Name:      "cast_total",
		Help:      "Votes recorded in the ledger",
	})

	VotesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coursevote",
		Subsystem: "votes",
		Name:      "rejected_total",
		Help:      "Vote attempts rejected by a business rule",
	}, []string{"reason"})

	StoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "coursevote",
		Subsystem: "store",
		Name:      "errors_total",
		Help:      "Requests that failed because the store was unavailable",
	})
)
