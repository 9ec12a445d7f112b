// Package metrics defines and registers all custom Prometheus metrics for
// the bookstore API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookstore"

// SignupsTotal counts successfully created accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// SigninsTotal counts sign-in attempts.
// Label:
//   - result: "ok" or "failed"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// BooksCreatedTotal counts catalog entries created by admins.
var BooksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books added to the catalog.",
	},
)

// BooksDeletedTotal counts catalog entries deleted by admins.
var BooksDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_deleted_total",
		Help:      "Total number of books removed from the catalog.",
	},
)

// CartOpsTotal counts successful cart operations.
// Label:
//   - op: "add", "remove", or "clear"
var CartOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_ops_total",
		Help:      "Total number of successful cart operations, by operation.",
	},
	[]string{"op"},
)

// PurchasesTotal counts completed purchase requests.
var PurchasesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of completed purchases.",
	},
)

// PurchasedBooksTotal counts books newly added to purchased sets.
var PurchasedBooksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchased_books_total",
		Help:      "Total number of books added to purchased sets.",
	},
)

// DownloadsTotal counts book download attempts.
// Label:
//   - result: "ok" or "denied"
var DownloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloads_total",
		Help:      "Total number of book download attempts, by result.",
	},
	[]string{"result"},
)
