package cmd

import (
	"fmt"
	"time"

	"github.com/david1005910/hanyu/internal/insights"
	"github.com/david1005910/hanyu/internal/spacedrep"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics and insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, g, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		now := time.Now()

		stats, err := st.Statistics(ctx, now)
		if err != nil {
			return fmt.Errorf("load statistics: %w", err)
		}
		level, err := g.GetLevelInfo(ctx)
		if err != nil {
			return fmt.Errorf("load level: %w", err)
		}
		srsStats, err := spacedrep.NewService(st.Cards()).Stats(ctx, now)
		if err != nil {
			return fmt.Errorf("load review stats: %w", err)
		}

		fmt.Printf("Level %d — %d XP (%d/%d into level, %d%%)\n",
			level.Level, level.TotalXP, level.XPIntoLevel, level.XPForNextLevel, level.ProgressPercent)
		fmt.Printf("Streak: %d day(s), longest %d\n\n", level.CurrentStreak, level.LongestStreak)

		fmt.Printf("Words tracked:   %d (%d due now)\n", srsStats.TotalWords, srsStats.DueNow)
		for _, tier := range spacedrep.AllTiers() {
			if n := srsStats.ByTier[tier]; n > 0 {
				fmt.Printf("  %s %-11s %d\n", tier.Icon(), tier.DisplayName(), n)
			}
		}
		fmt.Printf("\nSessions:        %d (%d study minutes)\n", stats.TotalSessions, stats.TotalStudyMinutes)
		if stats.AverageQuizScore > 0 {
			fmt.Printf("Quiz average:    %.0f%% (best %.0f%%)\n", stats.AverageQuizScore, stats.BestQuizScore)
		}
		if stats.AveragePronun > 0 {
			fmt.Printf("Pronunciation:   %.0f (7-day average)\n", stats.AveragePronun)
		}

		report, err := insights.AnalyzeProgress(ctx, st, now)
		if err != nil {
			return fmt.Errorf("analyze progress: %w", err)
		}
		fmt.Println("\nInsights:")
		for _, s := range report.Insights {
			fmt.Printf("  %s\n", s)
		}
		fmt.Println("Recommendations:")
		for _, s := range report.Recommendations {
			fmt.Printf("  - %s\n", s)
		}
		return nil
	},
}
