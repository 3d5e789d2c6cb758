package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/david1005910/hanyu/internal/lessons"
	"github.com/david1005910/hanyu/internal/spacedrep"
	"github.com/david1005910/hanyu/internal/store"
	"github.com/spf13/cobra"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson [number]",
	Short: "Study a lesson of new words",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		perLesson, _ := cmd.Flags().GetInt("words")
		level, _ := cmd.Flags().GetString("level")
		theme, _ := cmd.Flags().GetString("theme")
		vocabLimit, _ := cmd.Flags().GetInt("vocab-limit")
		practice, _ := cmd.Flags().GetBool("practice")

		number := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid lesson number %q", args[0])
			}
			number = n
		}

		vocabulary, err := loadVocabulary(cmd, vocabLimit)
		if err != nil {
			return err
		}

		manager := lessons.NewManager(vocabulary)
		words := manager.WordsFor(number, perLesson)
		if len(words) == 0 {
			fmt.Printf("Lesson %d is past the end of the word list (%d lessons available).\n",
				number, manager.LessonCount(perLesson))
			return nil
		}

		st, g, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		now := time.Now()

		fmt.Printf("Lesson %d — %d word(s)\n\n", number, len(words))
		for _, w := range words {
			fmt.Printf("  %s  %s — %s\n", w.Simplified, w.Pinyin, w.PrimaryDefinition())
		}

		svc := lessons.NewService(providerFromEnv(ctx), lessons.DefaultConfig())
		content := svc.GenerateContent(ctx, lessons.LessonInput{
			Words: words,
			Level: level,
			Theme: theme,
		})

		if content.Fallback {
			fmt.Println("\n(no LLM configured, showing built-in material)")
		}
		fmt.Println("\nDialogues:")
		for _, d := range content.Dialogues {
			fmt.Printf("  [%s]\n  %s\n  %s\n  %s\n\n", d.Context, d.Chinese, d.Pinyin, d.English)
		}
		fmt.Println("Grammar points:")
		for _, p := range content.GrammarPoints {
			fmt.Printf("  - %s\n", p)
		}
		fmt.Println("Exercises:")
		for _, e := range content.Exercises {
			fmt.Printf("  - %s\n", e)
		}

		if !practice {
			return nil
		}

		sessionID, err := st.Sessions().Start(ctx, number, store.SessionLesson, store.FormatTime(now))
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}

		srs := spacedrep.NewService(st.Cards())
		in := bufio.NewScanner(os.Stdin)
		learned := 0

		fmt.Println("\nPractice: rate your recall 0-5 for each word (q to stop).")
		for _, w := range words {
			fmt.Printf("\n%s  %s — %s\n", w.Simplified, w.Pinyin, w.PrimaryDefinition())

			quality, quit := readQuality(in)
			if quit {
				break
			}

			_, known := knownWord(ctx, st, w.Simplified)
			res, err := srs.Practice(ctx, w, quality, time.Now())
			if err != nil {
				return fmt.Errorf("practice %s: %w", w.Simplified, err)
			}
			manager.MarkLearned(w.Simplified)

			if !known {
				learned++
				if award, err := g.AwardXP(ctx, "word_learned", 1.0); err == nil {
					fmt.Printf("  +%d XP, next review in %d day(s)\n", award.Gained, res.IntervalDays)
				}
			} else {
				fmt.Printf("  next review in %d day(s)\n", res.IntervalDays)
			}
		}

		if err := st.Sessions().Close(ctx, sessionID, learned, nil, store.FormatTime(time.Now())); err != nil {
			return fmt.Errorf("close session: %w", err)
		}
		fmt.Printf("\nLearned %d new word(s). Lesson progress: %.0f%%\n",
			learned, manager.Progress()*100)

		if learned > 0 {
			finishStudyDay(ctx, g, time.Now())
		}
		return nil
	},
}

func init() {
	lessonCmd.Flags().Int("words", lessons.DefaultWordsPerLesson, "Words per lesson")
	lessonCmd.Flags().String("level", "HSK1", "HSK level label for generated material")
	lessonCmd.Flags().String("theme", "", "Optional lesson theme")
	lessonCmd.Flags().String("cedict", "", "Path to a CEDICT word list")
	lessonCmd.Flags().Int("vocab-limit", 500, "Maximum words to load from the word list")
	lessonCmd.Flags().Bool("practice", true, "Practice the words after showing the material")
}

// knownWord reports whether the word already has a card.
func knownWord(ctx context.Context, st *store.Store, simplified string) (*store.CardRecord, bool) {
	rec, err := st.Cards().Get(ctx, simplified)
	if err != nil {
		return nil, false
	}
	return rec, true
}
