package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/foerderfunke/shaclgen/internal/store"
)

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Manage stored SHACL shapes",
}

var shapesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored shapes",
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		shapes, err := db.ShapeRepository().List()
		if err != nil {
			return err
		}
		if len(shapes) == 0 {
			fmt.Println("No shapes stored yet. Run 'shaclgen generate' first.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tUPDATED\tDESCRIPTION")
		for _, s := range shapes {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				s.Name, s.UpdatedAt.Format("2006-01-02 15:04"), s.Description)
		}
		return w.Flush()
	}),
}

var shapesExportOutput string

var shapesExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print a stored shape's Turtle",
	Long: `Print the Turtle of a stored shape, or write it to a file with -o.

Examples:
  shaclgen shapes export buergergeld
  shaclgen shapes export buergergeld -o buergergeld.ttl`,
	Args: cobra.ExactArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		s, err := db.ShapeRepository().FindByName(args[0])
		if err != nil {
			return shapeLookupError(args[0], err)
		}

		if shapesExportOutput != "" {
			if err := os.WriteFile(shapesExportOutput, []byte(s.Turtle), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", shapesExportOutput, err)
			}
			fmt.Printf("Wrote %s\n", shapesExportOutput)
			return nil
		}
		fmt.Print(s.Turtle)
		if len(s.Turtle) > 0 && s.Turtle[len(s.Turtle)-1] != '\n' {
			fmt.Println()
		}
		return nil
	}),
}

var shapesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored shape and its feedback history",
	Args:  cobra.ExactArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		repo := db.ShapeRepository()
		s, err := repo.FindByName(args[0])
		if err != nil {
			return shapeLookupError(args[0], err)
		}
		if err := repo.Delete(s.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted shape %q\n", s.Name)
		return nil
	}),
}

// shapeLookupError turns a not-found error into a hint that lists what is
// actually stored.
func shapeLookupError(name string, err error) error {
	var notFound *store.ShapeNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("no shape named %q, run 'shaclgen shapes list' to see stored shapes", name)
	}
	return err
}

func init() {
	shapesExportCmd.Flags().StringVarP(&shapesExportOutput, "output", "o", "",
		"write Turtle to this file instead of stdout")

	shapesCmd.AddCommand(shapesListCmd)
	shapesCmd.AddCommand(shapesExportCmd)
	shapesCmd.AddCommand(shapesDeleteCmd)
	rootCmd.AddCommand(shapesCmd)
}
