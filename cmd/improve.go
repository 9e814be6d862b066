package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/foerderfunke/shaclgen/internal/generator"
	"github.com/foerderfunke/shaclgen/internal/store"
)

var (
	improveMessage    string
	improveShowTurtle bool
)

var improveCmd = &cobra.Command{
	Use:   "improve <name>",
	Short: "Rework a stored shape according to feedback",
	Long: `Send a stored shape back to the assistant together with feedback and
store the improved version. The feedback round is recorded and fed into
future generation prompts.

Prints a word-level diff of the change; --turtle prints the full
improved Turtle instead.

Examples:
  shaclgen improve buergergeld -m "einkommen_monatlich needs sh:maxCount 1"
  shaclgen improve wohngeld -m "missing the residence requirement" --turtle`,
	Args: cobra.ExactArgs(1),
	RunE: runWithSetup(runImprove),
}

func runImprove(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(improveMessage) == "" {
		return fmt.Errorf("feedback text is required, pass it with -m")
	}

	catalogue, err := loadCatalogue()
	if err != nil {
		return err
	}
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := newTracing()
	if err != nil {
		return err
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	gen, err := newGenerator(catalogue, db, provider)
	if err != nil {
		return err
	}

	repo := db.ShapeRepository()
	s, err := repo.FindByName(args[0])
	if err != nil {
		return shapeLookupError(args[0], err)
	}

	result, err := gen.Improve(cmd.Context(), s.ID, s.Turtle, improveMessage)
	if err != nil {
		return err
	}

	if err := db.ContextRepository().AddFeedback(&store.Feedback{
		ShapeID:        s.ID,
		Feedback:       improveMessage,
		ImprovedTurtle: result.Turtle,
	}); err != nil {
		return err
	}
	s.Turtle = result.Turtle
	if err := repo.Save(&s); err != nil {
		return err
	}

	if improveShowTurtle {
		fmt.Print(result.Turtle)
		if !strings.HasSuffix(result.Turtle, "\n") {
			fmt.Println()
		}
	} else {
		fmt.Println(generator.FormatDiff(result.Diff))
	}
	fmt.Printf("\nUpdated shape %q.\n", s.Name)

	if len(result.SuggestedFields) > 0 {
		fmt.Println("\nSuggested new data fields:")
		for _, f := range result.SuggestedFields {
			fmt.Printf("  %s (%s): %s\n", f.Name, f.Datatype, f.Description)
		}
	}
	return nil
}

func init() {
	improveCmd.Flags().StringVarP(&improveMessage, "message", "m", "",
		"feedback for the assistant (required)")
	improveCmd.Flags().BoolVar(&improveShowTurtle, "turtle", false,
		"print the full improved Turtle instead of a diff")
	rootCmd.AddCommand(improveCmd)
}
