package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/llm"
	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/session"
	"github.com/abhisek/brainarcade/internal/subject"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Try generated questions for a subject (no database)",
	Long: `Generate and interactively answer questions for a subject and grade.

This is a stateless tool: no database, no leaderboard, no daily lock.
Useful for checking question quality at a given grade and level.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("subject", string(leaderboard.SubjectMaths), "Subject: maths, english, art or code")
	previewCmd.Flags().Int("grade", 3, "Player grade")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	previewCmd.Flags().Int("difficulty", 1, "Difficulty level (maths only)")
	previewCmd.Flags().Bool("llm", false, "Generate English sentences with the configured LLM provider")
}

func runPreview(cmd *cobra.Command, args []string) error {
	subjectVal, _ := cmd.Flags().GetString("subject")
	grade, _ := cmd.Flags().GetInt("grade")
	count, _ := cmd.Flags().GetInt("count")
	difficulty, _ := cmd.Flags().GetInt("difficulty")
	useLLM, _ := cmd.Flags().GetBool("llm")

	subj, err := leaderboard.ParseSubject(subjectVal)
	if err != nil {
		return err
	}
	player, err := leaderboard.NewPlayer("preview", grade, subj)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("count must be positive")
	}

	ctx := cmd.Context()
	var deps subject.Deps
	if useLLM {
		// No EventRepo: preview does not log requests.
		provider, err := llm.NewProviderFromEnv(ctx, nil, nil)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		deps.Sentences = problemgen.NewLLMSentences(provider, problemgen.DefaultConfig())
	}
	strat, err := subject.New(subj, deps)
	if err != nil {
		return err
	}
	n, err := strat.Prepare(ctx, player, count)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Printf("%s, grade %d\n", subj.Label(), grade)
	fmt.Printf("Generating %d questions...\n\n", n)

	var correct int
	for i := 0; i < n; i++ {
		q, err := strat.Generate(ctx, problemgen.GenerateInput{
			Grade:      grade,
			Difficulty: difficulty,
			Index:      i,
		})
		if err != nil {
			fmt.Printf("Question %d: generation failed: %v\n\n", i+1, err)
			continue
		}

		fmt.Printf("── Question %d/%d ──\n", i+1, n)
		fmt.Println(q.Text)
		options := q.Choices
		if q.Format == problemgen.FormatOrdering {
			options = q.Pieces
		}
		for j, c := range options {
			fmt.Printf("  %d) %s\n", j+1, c)
		}

		if q.Format == problemgen.FormatOrdering {
			fmt.Print("\nYour order (e.g. 2 1 3): ")
		} else {
			fmt.Print("\nYour answer: ")
		}
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer, err := parsePreviewAnswer(scanner.Text(), q)
		if err != nil {
			fmt.Printf("(skipped: %v)\n\n", err)
			continue
		}

		if strat.Check(q, answer) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Not quite.\033[0m Answer: %s\n", q.Answer)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, n)
	return nil
}

// parsePreviewAnswer reads an option number, or a list of them for ordering.
func parsePreviewAnswer(line string, q *problemgen.Question) (session.Answer, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) == 0 {
		return session.Answer{}, fmt.Errorf("empty answer")
	}
	options := q.Choices
	if q.Format == problemgen.FormatOrdering {
		options = q.Pieces
	}
	pick := func(f string) (string, error) {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(options) {
			return "", fmt.Errorf("%q is not an option number", f)
		}
		return options[n-1], nil
	}

	if q.Format != problemgen.FormatOrdering {
		choice, err := pick(fields[0])
		return session.Answer{Choice: choice}, err
	}
	if len(fields) != len(options) {
		return session.Answer{}, fmt.Errorf("place all %d pieces", len(options))
	}
	order := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			return session.Answer{}, fmt.Errorf("piece %s used twice", f)
		}
		seen[f] = true
		piece, err := pick(f)
		if err != nil {
			return session.Answer{}, err
		}
		order = append(order, piece)
	}
	return session.Answer{Order: order}, nil
}
