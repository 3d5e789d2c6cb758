package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and unlock progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, g, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		all, err := g.AllAchievements(cmd.Context())
		if err != nil {
			return fmt.Errorf("load achievements: %w", err)
		}

		unlocked := 0
		for _, a := range all {
			mark := "  "
			when := ""
			if a.Unlocked {
				mark = "✓ "
				unlocked++
				if a.UnlockedAt != nil {
					when = a.UnlockedAt.Local().Format(" (2006-01-02)")
				}
			}
			fmt.Printf("%s%s %-20s %s%s\n", mark, a.Icon, a.Name, a.Description, when)
		}
		fmt.Printf("\n%d/%d unlocked\n", unlocked, len(all))
		return nil
	},
}
