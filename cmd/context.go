package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/foerderfunke/shaclgen/internal/store"
)

// Prompt context management: curated few-shot examples and free-text
// guidelines, both injected into generation prompts.

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Manage curated legal-text to Turtle examples",
}

var (
	exampleTextFile   string
	exampleTurtleFile string
	exampleNote       string
)

var examplesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a few-shot example from a text and a Turtle file",
	Long: `Add a curated legal-text to Turtle mapping. Examples are included in
generation prompts to show the assistant what a good mapping looks
like.

Examples:
  shaclgen examples add --text sgb2_7.txt --turtle buergergeld.ttl \
    --note "canonical Buergergeld profile"`,
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		if exampleTextFile == "" || exampleTurtleFile == "" {
			return fmt.Errorf("both --text and --turtle are required")
		}
		text, err := os.ReadFile(exampleTextFile)
		if err != nil {
			return err
		}
		turtle, err := os.ReadFile(exampleTurtleFile)
		if err != nil {
			return err
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		ex := store.Example{
			LegalText:   string(text),
			Turtle:      string(turtle),
			Annotations: exampleNote,
		}
		if err := db.ExampleRepository().Add(&ex); err != nil {
			return err
		}
		fmt.Printf("Added example %d.\n", ex.ID)
		return nil
	}),
}

var examplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List curated examples",
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		examples, err := db.ExampleRepository().List()
		if err != nil {
			return err
		}
		if len(examples) == 0 {
			fmt.Println("No examples stored yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTEXT CHARS\tANNOTATIONS")
		for _, ex := range examples {
			fmt.Fprintf(w, "%d\t%d\t%s\n", ex.ID, len(ex.LegalText), ex.Annotations)
		}
		return w.Flush()
	}),
}

var examplesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a curated example",
	Args:  cobra.ExactArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("example id must be a number, got %q", args[0])
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.ExampleRepository().Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted example %d\n", id)
		return nil
	}),
}

var guidelinesCmd = &cobra.Command{
	Use:   "guidelines",
	Short: "Manage generation guidelines",
}

var guidelinesAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a guideline injected into every generation prompt",
	Long: `Add a free-text guideline. Guidelines steer every generation and
improvement prompt.

Examples:
  shaclgen guidelines add "Always set sh:maxCount 1 on date fields"`,
	Args: cobra.ExactArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		g := store.Guideline{Text: args[0]}
		if err := db.ContextRepository().AddGuideline(&g); err != nil {
			return err
		}
		fmt.Printf("Added guideline %d.\n", g.ID)
		return nil
	}),
}

var guidelinesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generation guidelines",
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		guidelines, err := db.ContextRepository().Guidelines()
		if err != nil {
			return err
		}
		if len(guidelines) == 0 {
			fmt.Println("No guidelines stored yet.")
			return nil
		}
		for _, g := range guidelines {
			fmt.Printf("%d: %s\n", g.ID, g.Text)
		}
		return nil
	}),
}

var guidelinesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a guideline",
	Args:  cobra.ExactArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("guideline id must be a number, got %q", args[0])
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.ContextRepository().DeleteGuideline(id); err != nil {
			return err
		}
		fmt.Printf("Deleted guideline %d\n", id)
		return nil
	}),
}

func init() {
	examplesAddCmd.Flags().StringVar(&exampleTextFile, "text", "", "file holding the legal text")
	examplesAddCmd.Flags().StringVar(&exampleTurtleFile, "turtle", "", "file holding the Turtle mapping")
	examplesAddCmd.Flags().StringVar(&exampleNote, "note", "", "optional annotation")

	examplesCmd.AddCommand(examplesAddCmd)
	examplesCmd.AddCommand(examplesListCmd)
	examplesCmd.AddCommand(examplesDeleteCmd)
	rootCmd.AddCommand(examplesCmd)

	guidelinesCmd.AddCommand(guidelinesAddCmd)
	guidelinesCmd.AddCommand(guidelinesListCmd)
	guidelinesCmd.AddCommand(guidelinesDeleteCmd)
	rootCmd.AddCommand(guidelinesCmd)
}
