package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ledgerMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "verde",
		Name:      "ledger_mutations_total",
		Help:      "Total number of committed ledger mutations by transaction kind and operation",
	},
	[]string{"kind", "op"},
)
