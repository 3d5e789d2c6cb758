package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/david1005910/hanyu/internal/spacedrep"
	"github.com/david1005910/hanyu/internal/store"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review due words with spaced repetition",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, g, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		now := time.Now()
		srs := spacedrep.NewService(st.Cards())

		queue, err := srs.DueQueue(ctx, limit, now)
		if err != nil {
			return fmt.Errorf("load due queue: %w", err)
		}
		if len(queue) == 0 {
			fmt.Println("Nothing due. 好极了!")
			return nil
		}

		sessionID, err := st.Sessions().Start(ctx, 0, store.SessionSRS, store.FormatTime(now))
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}

		fmt.Printf("%d word(s) due. Rate your recall 0-5 (q to quit).\n\n", len(queue))
		in := bufio.NewScanner(os.Stdin)
		reviewed := 0

		for i, card := range queue {
			fmt.Printf("[%d/%d] %s", i+1, len(queue), card.Simplified)
			if card.Traditional != "" && card.Traditional != card.Simplified {
				fmt.Printf(" (%s)", card.Traditional)
			}
			fmt.Print("\nPress Enter to reveal... ")
			if !in.Scan() {
				break
			}
			fmt.Printf("  %s — %s\n", card.Pinyin, strings.Join(card.Definitions, ", "))

			quality, quit := readQuality(in)
			if quit {
				break
			}

			res, err := srs.SubmitReview(ctx, card.Simplified, quality, time.Now())
			if err != nil {
				if errors.Is(err, spacedrep.ErrInvalidQuality) {
					fmt.Println("  rating must be between 0 and 5, skipping")
					continue
				}
				return fmt.Errorf("submit review: %w", err)
			}
			reviewed++

			fmt.Printf("  %s next review in %d day(s) (%s)\n\n",
				res.Tier.Icon(), res.IntervalDays, res.NextReview.Format("2006-01-02"))

			if res.Tier == spacedrep.TierMastered && card.Tier != spacedrep.TierMastered {
				if award, err := g.AwardXP(ctx, "word_mastered", 1.0); err == nil {
					fmt.Printf("✨ %s mastered! +%d XP\n\n", res.Word, award.Gained)
				}
			}
		}

		if err := st.Sessions().Close(ctx, sessionID, reviewed, nil, store.FormatTime(time.Now())); err != nil {
			return fmt.Errorf("close session: %w", err)
		}
		fmt.Printf("Reviewed %d word(s).\n", reviewed)

		if reviewed > 0 {
			finishStudyDay(ctx, g, time.Now())
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().Int("limit", 20, "Maximum number of cards per session")
}

// readQuality prompts until it gets a 0-5 rating or a quit request.
func readQuality(in *bufio.Scanner) (int, bool) {
	for {
		fmt.Print("  Recall (0-5): ")
		if !in.Scan() {
			return 0, true
		}
		text := strings.TrimSpace(in.Text())
		if text == "q" || text == "quit" {
			return 0, true
		}
		q, err := strconv.Atoi(text)
		if err != nil || q < 0 || q > 5 {
			fmt.Println("  enter a number from 0 (blackout) to 5 (perfect)")
			continue
		}
		return q, false
	}
}
