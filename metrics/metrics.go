package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var SubmissionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gatherpass_submissions_total",
	Help: "The total number of submission ledger operations",
}, []string{"operation"})

var PointsGrantedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "gatherpass_points_granted_total",
	Help: "Net points written to season participant totals",
})

var RanksAwardedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "gatherpass_ranks_awarded_total",
	Help: "Number of season ranks awarded through promotions",
})

var PrizesAwardedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "gatherpass_prizes_awarded_total",
	Help: "Number of prize awards created through promotions",
})

var PromotionScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "gatherpass_promotion_scan_duration_seconds",
	Help: "Duration of the promotion candidate scan",
})

var BotCommandCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gatherpass_bot_commands_total",
	Help: "The number of handled discord slash commands",
}, []string{"command"})
