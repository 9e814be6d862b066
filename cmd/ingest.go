package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/foerderfunke/shaclgen/internal/ingest"
)

var ingestSection string

var ingestCmd = &cobra.Command{
	Use:   "ingest <document>",
	Short: "Preview how a legal text splits into sections",
	Long: `Read a legal text (plain text or PDF) and list the § sections it splits
into, the same segmentation the generation pipeline sees. Use --section
to print the text of a single section.

Examples:
  shaclgen ingest sgb2.pdf
  shaclgen ingest sgb2.pdf --section 7a`,
	Args: cobra.ExactArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		text, err := ingest.ReadDocument(args[0])
		if err != nil {
			return err
		}
		text = ingest.Truncate(text, cfg.Generation.MaxTextLength)

		sections := ingest.SplitSections(text)
		if len(sections) == 0 {
			fmt.Println("Document is empty.")
			return nil
		}

		if ingestSection != "" {
			for _, s := range sections {
				if s.Ref == ingestSection {
					fmt.Println(strings.TrimSpace(s.Text))
					return nil
				}
			}
			return fmt.Errorf("no section § %s in %s", ingestSection, args[0])
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SECTION\tSUBSECTIONS\tCHARS")
		for _, s := range sections {
			ref := "§ " + s.Ref
			if s.Ref == "" {
				ref = "(preamble)"
			}
			fmt.Fprintf(w, "%s\t%d\t%d\n", ref, len(ingest.SplitSubsections(s.Text)), len(s.Text))
		}
		return w.Flush()
	}),
}

func init() {
	ingestCmd.Flags().StringVar(&ingestSection, "section", "",
		"print the text of this § section")
	rootCmd.AddCommand(ingestCmd)
}
