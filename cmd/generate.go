package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/foerderfunke/shaclgen/internal/ingest"
	"github.com/foerderfunke/shaclgen/internal/registry"
	"github.com/foerderfunke/shaclgen/internal/store"
)

var (
	generateName        string
	generateDescription string
	generateAddFields   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <document>",
	Short: "Generate a SHACL shape from a legal text",
	Long: `Read a legal text (plain text or PDF), ask the assistant to map it onto
a SHACL requirement profile over the known data fields, and store the
result.

Fields the assistant used that are missing from the catalogue are
reported as suggestions; --add-fields appends them to the catalogue
file.

Examples:
  shaclgen generate sgb2_7.txt
  shaclgen generate wohngeldgesetz.pdf --name wohngeld
  shaclgen generate sgb2_7.txt --add-fields`,
	Args: cobra.ExactArgs(1),
	RunE: runWithSetup(runGenerate),
}

func runGenerate(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	text, err := ingest.ReadDocument(docPath)
	if err != nil {
		return err
	}
	text = ingest.Truncate(text, cfg.Generation.MaxTextLength)

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

	result, err := gen.Generate(cmd.Context(), text)
	if err != nil {
		return err
	}

	name := generateName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	}
	s := store.Shape{
		Name:        name,
		LegalText:   text,
		Turtle:      result.Turtle,
		Description: generateDescription,
	}
	if err := db.ShapeRepository().Save(&s); err != nil {
		return err
	}

	fmt.Print(result.Turtle)
	if !strings.HasSuffix(result.Turtle, "\n") {
		fmt.Println()
	}
	fmt.Printf("\nStored shape %q.\n", s.Name)
	if result.CacheHit {
		fmt.Println("(reused a cached assistant reply)")
	}

	if len(result.SuggestedFields) == 0 {
		return nil
	}
	fmt.Println("\nSuggested new data fields:")
	for _, f := range result.SuggestedFields {
		fmt.Printf("  %s (%s): %s\n", f.Name, f.Datatype, f.Description)
	}
	if !generateAddFields {
		fmt.Println("Re-run with --add-fields to append them to the catalogue.")
		return nil
	}
	return appendFields(catalogue, result.SuggestedFields)
}

// appendFields adds suggested fields to the catalogue file and reloads the
// handle so later commands in the same process see them.
func appendFields(catalogue *registry.Handle, suggested []registry.Field) error {
	reg := catalogue.Snapshot()
	merged, err := registry.New(append(reg.Fields(), suggested...))
	if err != nil {
		return fmt.Errorf("merging suggested fields: %w", err)
	}
	if err := merged.SaveFile(catalogue.Path()); err != nil {
		return fmt.Errorf("saving catalogue: %w", err)
	}
	catalogue.Swap(merged)
	fmt.Printf("Appended %d field(s) to %s.\n", len(suggested), catalogue.Path())
	return nil
}

func init() {
	generateCmd.Flags().StringVarP(&generateName, "name", "n", "",
		"name for the stored shape (default: document base name)")
	generateCmd.Flags().StringVarP(&generateDescription, "description", "d", "",
		"free-text description stored with the shape")
	generateCmd.Flags().BoolVar(&generateAddFields, "add-fields", false,
		"append suggested fields to the catalogue file")
	rootCmd.AddCommand(generateCmd)
}
