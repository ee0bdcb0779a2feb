// Package metrics defines and registers all custom Prometheus metrics for
// the recipes API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recipes"

// RecipeWritesTotal counts recipe aggregate writes that committed.
// Label:
//   - action: "created", "updated", or "deleted"
var RecipeWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipe_writes_total",
		Help:      "Total number of committed recipe create/update/delete operations.",
	},
	[]string{"action"},
)

// PolicyDenialsTotal counts requests rejected by the policy guard.
// Labels:
//   - action: the denied action (e.g. "delete")
//   - subject: the subject type (e.g. "tag")
var PolicyDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of requests rejected by the policy guard.",
	},
	[]string{"action", "subject"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
