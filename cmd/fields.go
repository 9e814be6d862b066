package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/foerderfunke/shaclgen/internal/config"
	"github.com/foerderfunke/shaclgen/internal/log"
	"github.com/foerderfunke/shaclgen/internal/registry"
	"github.com/foerderfunke/shaclgen/internal/shape"
	"github.com/foerderfunke/shaclgen/internal/watcher"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Inspect the data-field catalogue",
}

var fieldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all catalogue fields",
	Long: `List the fields of the data-field catalogue in declaration order.

Examples:
  shaclgen fields list
  shaclgen fields list --catalogue ./datafields.yaml`,
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		catalogue, err := loadCatalogue()
		if err != nil {
			return err
		}
		reg := catalogue.Snapshot()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FIELD\tCONSTRAINT\tDESCRIPTION")
		for _, f := range reg.Fields() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Constraint.Kind, f.Description)
		}
		return w.Flush()
	}),
}

var fieldsShowCmd = &cobra.Command{
	Use:   "show <field>",
	Short: "Show one field, matched exactly or by synonym",
	Args:  cobra.ExactArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		catalogue, err := loadCatalogue()
		if err != nil {
			return err
		}
		reg := catalogue.Snapshot()

		f, ok := reg.FindMatching(args[0])
		if !ok {
			suggestion := registry.Suggest(args[0])
			fmt.Printf("No field matches %q.\n\nSuggested definition:\n", args[0])
			fmt.Printf("  name: %s\n  datatype: %s\n  description: %s\n",
				suggestion.Name, suggestion.Datatype, suggestion.Description)
			return nil
		}

		fmt.Printf("Field:       %s\n", f.Name)
		fmt.Printf("Path:        %s\n", f.Path)
		fmt.Printf("Datatype:    %s\n", f.Datatype)
		fmt.Printf("Description: %s\n", f.Description)
		if len(f.Synonyms) > 0 {
			fmt.Printf("Synonyms:    %v\n", f.Synonyms)
		}
		if f.IsEnumerated() {
			fmt.Println("Allowed values:")
			for _, v := range f.Constraint.Values {
				fmt.Printf("  %s  (%s)\n", v.ID, v.Label)
			}
		}
		if f.IsConstrained() {
			frag, err := shape.BuildPropertyShape(f)
			if err != nil {
				return err
			}
			fmt.Println("\nProperty shape:")
			return shape.SerializeFragment(os.Stdout, frag)
		}
		return nil
	}),
}

var fieldsValidateWatch bool

var fieldsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the catalogue file",
	Long: `Parse the catalogue and report malformed field definitions.

With --watch the catalogue is re-validated every time the file changes,
until interrupted.`,
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		path := cfg.CataloguePath
		if path == "" {
			path = config.Defaults().CataloguePath
		}

		report := func() error {
			reg, err := registry.LoadFile(path)
			if err != nil {
				fmt.Printf("%s: INVALID\n%v\n", path, err)
				return err
			}
			fmt.Printf("%s: OK (%d fields)\n", path, reg.Len())
			return nil
		}

		if !fieldsValidateWatch {
			return report()
		}

		_ = report()
		w, err := watcher.New(watcher.DefaultConfig(path))
		if err != nil {
			return err
		}
		changes, err := w.Start()
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		fmt.Println("Watching for changes, Ctrl-C to stop.")
		for {
			select {
			case <-changes:
				log.Debug(log.CatWatcher, "catalogue changed, revalidating", "path", path)
				_ = report()
			case <-sig:
				return nil
			}
		}
	}),
}

var fieldsExportCmd = &cobra.Command{
	Use:   "export <benefit> [field...]",
	Short: "Render a requirement profile from catalogue fields",
	Long: `Assemble a SHACL requirement profile for a benefit directly from the
catalogue, without calling the assistant. Named fields become property
shapes; with no fields given, every constrained field is included.

Examples:
  shaclgen fields export buergergeld
  shaclgen fields export wohngeld einkommen_monatlich staatsbuergerschaft`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		catalogue, err := loadCatalogue()
		if err != nil {
			return err
		}
		reg := catalogue.Snapshot()

		fieldNames := args[1:]
		if len(fieldNames) == 0 {
			for _, f := range reg.Fields() {
				if f.IsConstrained() {
					fieldNames = append(fieldNames, f.Name)
				}
			}
		}

		profile, err := shape.NewProfile(args[0], reg, fieldNames)
		if err != nil {
			return fmt.Errorf("building profile: %w", err)
		}
		log.Info(log.CatShape, "profile exported",
			"benefit", profile.Benefit, "fields", len(profile.Fragments))
		return shape.Serialize(os.Stdout, profile)
	}),
}

func init() {
	fieldsValidateCmd.Flags().BoolVar(&fieldsValidateWatch, "watch", false,
		"re-validate whenever the catalogue file changes")

	fieldsCmd.AddCommand(fieldsListCmd)
	fieldsCmd.AddCommand(fieldsShowCmd)
	fieldsCmd.AddCommand(fieldsValidateCmd)
	fieldsCmd.AddCommand(fieldsExportCmd)
	rootCmd.AddCommand(fieldsCmd)
}
