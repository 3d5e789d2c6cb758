package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/david1005910/hanyu/internal/llm"
	"github.com/david1005910/hanyu/internal/store"
	"github.com/spf13/cobra"
)

const chatSystemPrompt = `You are a friendly Chinese conversation partner for an English-speaking learner. Reply in simplified Chinese with pinyin and an English translation on separate lines. Keep replies short and at the learner's level. If the learner makes a mistake, gently note the correction in English before replying.`

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Practice conversation with an AI tutor",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		provider := providerFromEnv(ctx)
		if provider == nil {
			return fmt.Errorf("chat needs an LLM provider: set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GEMINI_API_KEY")
		}

		st, g, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		now := time.Now()
		sessionID, err := st.Sessions().Start(ctx, 0, store.SessionConversation, store.FormatTime(now))
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}

		fmt.Println("Chat with your tutor (type 'exit' to stop).")
		in := bufio.NewScanner(os.Stdin)
		var history []llm.Message
		turns := 0

		for {
			fmt.Print("\n你> ")
			if !in.Scan() {
				break
			}
			text := strings.TrimSpace(in.Text())
			if text == "" {
				continue
			}
			if text == "exit" || text == "quit" {
				break
			}

			history = append(history, llm.Message{Role: llm.RoleUser, Content: text})
			resp, err := provider.Generate(ctx, llm.Request{
				System:      chatSystemPrompt,
				Messages:    history,
				MaxTokens:   512,
				Temperature: 0.7,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, "tutor unavailable:", err)
				history = history[:len(history)-1]
				continue
			}

			reply := string(resp.Content)
			fmt.Printf("\n老师> %s\n", reply)
			history = append(history, llm.Message{Role: llm.RoleAssistant, Content: reply})

			turns++
			turn := store.ConversationTurn{
				SessionID:   sessionID,
				TurnNumber:  turns,
				UserMessage: text,
				AIResponse:  reply,
				Timestamp:   store.FormatTime(time.Now()),
			}
			if err := st.History().RecordConversationTurn(ctx, turn); err != nil {
				fmt.Fprintln(os.Stderr, "record turn:", err)
			}
			if _, err := g.AwardXP(ctx, "conversation_turn", 1.0); err != nil {
				fmt.Fprintln(os.Stderr, "award xp:", err)
			}
		}

		if err := st.Sessions().Close(ctx, sessionID, 0, nil, store.FormatTime(time.Now())); err != nil {
			return fmt.Errorf("close session: %w", err)
		}
		fmt.Printf("\n%d turn(s) practiced.\n", turns)

		if turns > 0 {
			finishStudyDay(ctx, g, time.Now())
		}
		return nil
	},
}
