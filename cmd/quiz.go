package cmd

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/david1005910/hanyu/internal/quizgen"
	"github.com/david1005910/hanyu/internal/store"
	"github.com/david1005910/hanyu/internal/vocab"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take an adaptive quiz over your tracked words",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")

		st, g, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		now := time.Now()

		recs, err := st.Cards().Due(ctx, store.FormatTime(now), count)
		if err != nil {
			return fmt.Errorf("load quiz words: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No words to quiz yet. Run a lesson first.")
			return nil
		}

		words := make([]vocab.Word, 0, len(recs))
		for _, rec := range recs {
			words = append(words, vocab.Word{
				Simplified:  rec.Simplified,
				Traditional: rec.Traditional,
				Pinyin:      rec.Pinyin,
				Definitions: vocab.SplitDefinitions(rec.Definitions),
			})
		}

		scores, err := st.Sessions().RecentQuizScores(ctx, 5)
		if err != nil {
			return fmt.Errorf("load score history: %w", err)
		}

		questions := quizgen.NewGenerator(nil).AdaptiveQuiz(words, scores, count)
		if len(questions) == 0 {
			fmt.Println("Not enough words for a quiz.")
			return nil
		}

		difficulty := quizgen.DifficultyFor(scores)
		fmt.Printf("Quiz: %d question(s), difficulty %s.\n\n", len(questions), difficulty)

		sessionID, err := st.Sessions().Start(ctx, 0, store.SessionQuiz, store.FormatTime(now))
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}

		in := bufio.NewScanner(os.Stdin)
		earned := 0
		correct := 0

		for i, q := range questions {
			fmt.Printf("Q%d. %s\n", i+1, q.Prompt)
			for j, opt := range q.Options {
				fmt.Printf("  %d) %s\n", j+1, opt)
			}
			fmt.Print("> ")
			if !in.Scan() {
				break
			}
			answer := resolveAnswer(strings.TrimSpace(in.Text()), q.Options)

			ev := quizgen.Evaluate(q, answer)
			fmt.Printf("%s\n", ev.Feedback)
			if ev.Explanation != "" {
				fmt.Printf("   %s\n", ev.Explanation)
			}
			fmt.Println()

			earned += ev.Score
			if ev.Correct {
				correct++
				if _, err := g.AwardXP(ctx, "quiz_correct", 1.0); err != nil {
					return fmt.Errorf("award xp: %w", err)
				}
			}
		}

		total := quizgen.TotalPoints(questions)
		percent := 0.0
		if total > 0 {
			percent = math.Round(float64(earned) / float64(total) * 100)
		}

		if err := st.Sessions().Close(ctx, sessionID, 0, &percent, store.FormatTime(time.Now())); err != nil {
			return fmt.Errorf("close session: %w", err)
		}

		fmt.Printf("Score: %.0f%% (%d/%d correct, %d/%d points)\n",
			percent, correct, len(questions), earned, total)

		if percent == 100 {
			if res, err := g.AwardXP(ctx, "quiz_perfect", 1.0); err == nil {
				fmt.Printf("💯 Perfect! +%d XP\n", res.Gained)
			}
		}

		finishStudyDay(ctx, g, time.Now())
		return nil
	},
}

func init() {
	quizCmd.Flags().Int("count", 10, "Number of questions")
}

// resolveAnswer maps a numeric choice to its option text; free-form
// input passes through unchanged.
func resolveAnswer(input string, options []string) string {
	if len(options) == 0 {
		return input
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return input
}
