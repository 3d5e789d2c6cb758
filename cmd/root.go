package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/david1005910/hanyu/internal/gamify"
	"github.com/david1005910/hanyu/internal/llm"
	"github.com/david1005910/hanyu/internal/store"
	"github.com/david1005910/hanyu/internal/vocab"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hanyu",
	Short: "Chinese vocabulary trainer",
	Long:  "Hanyu — terminal trainer for Mandarin vocabulary with spaced repetition, adaptive quizzes, and AI-generated lessons.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HANYU_DB env var)")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then HANYU_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the store at the resolved path and ensures the
// progress row and achievement catalog exist.
func openStore(cmd *cobra.Command) (*store.Store, *gamify.Service, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	g := gamify.NewService(st.Progress(), st.Achievements(), st)
	if err := g.Init(cmd.Context()); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("init progress: %w", err)
	}
	return st, g, nil
}

// providerFromEnv builds an LLM provider from HANYU_* env vars, falling
// back to probing standard API key vars. Returns nil if nothing is
// configured; callers degrade to built-in content.
func providerFromEnv(ctx context.Context) llm.Provider {
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil || (cfg.Provider != "mock" && !hasKey(cfg)) {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil
		}
		cfg = discovered
	}

	p, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		return nil
	}
	return p
}

func hasKey(cfg llm.Config) bool {
	switch cfg.Provider {
	case "anthropic":
		return cfg.Anthropic.APIKey != ""
	case "openai":
		return cfg.OpenAI.APIKey != ""
	case "gemini":
		return cfg.Gemini.APIKey != ""
	}
	return false
}

// loadVocabulary reads the CEDICT word list given by --cedict or the
// HANYU_CEDICT env var.
func loadVocabulary(cmd *cobra.Command, limit int) ([]vocab.Word, error) {
	path, _ := cmd.Flags().GetString("cedict")
	if path == "" {
		path = os.Getenv("HANYU_CEDICT")
	}
	if path == "" {
		return nil, fmt.Errorf("no word list: pass --cedict or set HANYU_CEDICT")
	}
	words, err := vocab.LoadCEDICT(path, limit)
	if err != nil {
		return nil, fmt.Errorf("load word list: %w", err)
	}
	return words, nil
}

// finishStudyDay updates the streak, pays milestone bonuses, and checks
// achievements after any study activity.
func finishStudyDay(ctx context.Context, g *gamify.Service, now time.Time) {
	streak, err := g.UpdateStreak(ctx, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, "update streak:", err)
		return
	}
	if !streak.AlreadyDone {
		fmt.Printf("🔥 Streak: %d day(s) (longest %d)\n", streak.Current, streak.Longest)
		if event, ok := gamify.MilestoneEvent(streak.Current); ok {
			if res, err := g.AwardXP(ctx, event, 1.0); err == nil {
				fmt.Printf("⭐ Streak bonus: +%d XP\n", res.Gained)
			}
		}
	}

	unlocked, err := g.CheckAchievements(ctx, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, "check achievements:", err)
		return
	}
	for _, a := range unlocked {
		fmt.Printf("🏆 Achievement unlocked: %s %s — %s\n", a.Icon, a.Name, a.Description)
	}
}
