package cmd

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/abhisek/ga4tutor/internal/lessons"
	"github.com/abhisek/ga4tutor/internal/llm"
	"github.com/abhisek/ga4tutor/internal/store"
	"github.com/abhisek/ga4tutor/internal/ui/theme"
	"github.com/spf13/cobra"
)

var purposes = []string{llm.PurposeLessonPrime, llm.PurposeLesson, llm.PurposeQA}

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded model turns",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model turns",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		if purpose != "" && !slices.Contains(purposes, purpose) {
			return fmt.Errorf("unknown purpose %q (want one of %s)", purpose, strings.Join(purposes, ", "))
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().QueryLLMEvents(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No model turns recorded.")
			return nil
		}

		rows := make([][]string, 0, len(events))
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			rows = append(rows, []string{
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				ok,
			})
		}
		fmt.Println(renderTable([]string{"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK"}, rows))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and reply of a model turn",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fmt.Printf("ID:        %d\n", e.ID)
		fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", e.Provider)
		fmt.Printf("Model:     %s\n", e.Model)
		fmt.Printf("Purpose:   %s\n", e.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		fmt.Printf("Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", e.ErrorMessage)
		}
		if e.Purpose != llm.PurposeQA && e.ResponseBody != "" {
			fmt.Printf("Screen:    %s\n", describeScreen(e.ResponseBody))
		}

		section("REQUEST", e.RequestBody)
		section("RESPONSE", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		stats, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No model usage recorded yet.")
			return nil
		}

		var calls, in, out int
		rows := make([][]string, 0, len(stats)+1)
		for _, st := range stats {
			rows = append(rows, []string{
				st.Purpose,
				strconv.Itoa(st.Calls),
				strconv.Itoa(st.InputTokens),
				strconv.Itoa(st.OutputTokens),
				strconv.Itoa(st.InputTokens + st.OutputTokens),
				strconv.Itoa(st.AvgLatencyMs),
			})
			calls += st.Calls
			in += st.InputTokens
			out += st.OutputTokens
		}
		rows = append(rows, []string{"TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), strconv.Itoa(in + out), ""})
		fmt.Println(theme.Subtitle.Render("Usage by purpose"))
		fmt.Println(renderTable([]string{"Purpose", "Calls", "Input", "Output", "Total", "Avg ms"}, rows))

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		var total float64
		var unpriced []string
		rows = rows[:0]
		for _, mu := range byModel {
			cost := "?"
			if price, ok := llm.LookupCost(mu.Model); ok {
				c := price.Cost(mu.InputTokens, mu.OutputTokens)
				total += c
				cost = formatCost(c)
			} else {
				unpriced = append(unpriced, mu.Model)
			}
			rows = append(rows, []string{
				truncate(mu.Model, 32),
				strconv.Itoa(mu.Calls),
				strconv.Itoa(mu.InputTokens),
				strconv.Itoa(mu.OutputTokens),
				cost,
			})
		}
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		rows = append(rows, []string{label, "", "", "", formatCost(total)})

		fmt.Println()
		fmt.Println(theme.Subtitle.Render("Estimated cost (USD)"))
		fmt.Println(renderTable([]string{"Model", "Calls", "Input", "Output", "Cost"}, rows))
		if len(unpriced) > 0 {
			fmt.Printf("Pricing unavailable for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Label.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// describeScreen summarises a recorded lesson reply the way the tutor
// would render its header.
func describeScreen(body string) string {
	scr, err := lessons.Decode(body)
	if err != nil {
		return "(no JSON screen)"
	}
	title := scr.UIState.ScreenTitle
	if title == "" {
		title = "Learning Module"
	}
	return fmt.Sprintf("%q module=%s step=%d blocks=%d actions=%d",
		title, scr.UIState.CurrentModuleID, scr.UIState.CurrentStep,
		len(scr.ContentBlocks), len(scr.NextActions))
}

func section(name, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Println()
	fmt.Println(sep)
	fmt.Println(name)
	fmt.Println(sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (lesson-prime, lesson, qa)")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this (e.g. 1h)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
