package cron

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gatherpass/service"

	"gorm.io/gorm"
)

// PromotionScanLoop periodically scans the current season for users whose
// point total qualifies them for a rank they have not been awarded yet and
// reports them through notify. Promotions themselves stay an admin action.
func PromotionScanLoop(ctx context.Context, db *gorm.DB, interval time.Duration, notify func(string)) {
	promotionService := service.NewPromotionService(db)
	seasonService := service.NewSeasonService(db)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		season, err := seasonService.GetCurrentSeason()
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("promotion scan: could not determine current season: %v", err)
			}
			continue
		}
		candidates, err := promotionService.GetPromotionCandidates(season.Id)
		if err != nil {
			log.Printf("promotion scan failed for season %d: %v", season.Id, err)
			continue
		}
		if len(candidates) == 0 {
			continue
		}
		notify(formatCandidateDigest(season.Name, candidates))
	}
}

func formatCandidateDigest(seasonName string, candidates []*service.PromotionCandidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 **%d** user(s) are eligible for a promotion in **%s**:\n", len(candidates), seasonName)
	for _, candidate := range candidates {
		name := fmt.Sprintf("user %d", candidate.SeasonUser.UserId)
		if candidate.SeasonUser.User != nil {
			name = candidate.SeasonUser.User.InGameName
		}
		fmt.Fprintf(&sb, "- **%s** (%d points) qualifies for **%s**\n",
			name, candidate.SeasonUser.TotalPoints, candidate.EligibleRank.Rank.Name)
	}
	sb.WriteString("Use `/promote` to grant the ranks.")
	return sb.String()
}
