package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/foerderfunke/shaclgen/internal/instance"
	"github.com/foerderfunke/shaclgen/internal/shape"
	"github.com/foerderfunke/shaclgen/internal/store"
)

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Manage subject instances and check them against the catalogue",
}

var instanceAssignments []string

var instanceCreateCmd = &cobra.Command{
	Use:   "create <id>",
	Short: "Create a subject instance from field assignments",
	Long: `Create a subject instance with --set field=value assignments, validate
every assignment against the catalogue, and store the instance with its
rendered Turtle. Repeat --set to give a field several values.

Examples:
  shaclgen instance create maria --set geburtsdatum=1990-05-17
  shaclgen instance create maria \
    --set staatsbuergerschaft=staatsbuergerschaft-ao-ger \
    --set staatsbuergerschaft=staatsbuergerschaft-ao-eu`,
	Args: cobra.ExactArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		props := make(map[string][]string)
		for _, raw := range instanceAssignments {
			field, value, ok := strings.Cut(raw, "=")
			if !ok || field == "" {
				return fmt.Errorf("assignment %q is not of the form field=value", raw)
			}
			props[field] = append(props[field], value)
		}

		catalogue, err := loadCatalogue()
		if err != nil {
			return err
		}
		reg := catalogue.Snapshot()

		c, err := instance.New(args[0], props, reg)
		if err != nil {
			return err
		}
		turtle := c.Turtle(reg)

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.InstanceRepository().Save(&store.Instance{
			ID:         c.ID,
			Properties: c.Properties,
			Turtle:     turtle,
		}); err != nil {
			return err
		}

		fmt.Print(turtle)
		fmt.Printf("\nStored instance %q.\n", c.ID)
		return nil
	}),
}

var instanceCheckCmd = &cobra.Command{
	Use:   "check <id>",
	Short: "Check a stored instance against the catalogue's property shapes",
	Long: `Evaluate a stored instance against the property shapes derived from the
catalogue: allowed values, datatypes, and maxCount. Fields the instance
leaves unassigned are not violations.

Examples:
  shaclgen instance check maria`,
	Args: cobra.ExactArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		stored, err := db.InstanceRepository().FindByID(args[0])
		if err != nil {
			return instanceLookupError(args[0], err)
		}

		catalogue, err := loadCatalogue()
		if err != nil {
			return err
		}
		fragments := shape.BuildAll(catalogue.Snapshot())

		c := &instance.Citizen{ID: stored.ID, Properties: stored.Properties}
		conforms, violations := instance.Check(c, fragments)
		if conforms {
			fmt.Printf("Instance %q conforms.\n", c.ID)
			return nil
		}
		fmt.Printf("Instance %q does not conform:\n", c.ID)
		for _, v := range violations {
			fmt.Printf("  %s\n", v)
		}
		return fmt.Errorf("%d violation(s)", len(violations))
	}),
}

var instanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored instances",
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		instances, err := db.InstanceRepository().List()
		if err != nil {
			return err
		}
		if len(instances) == 0 {
			fmt.Println("No instances stored yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFIELDS\tCREATED")
		for _, inst := range instances {
			fmt.Fprintf(w, "%s\t%d\t%s\n",
				inst.ID, len(inst.Properties), inst.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	}),
}

var instanceDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored instance",
	Args:  cobra.ExactArgs(1),
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.InstanceRepository().Delete(args[0]); err != nil {
			return instanceLookupError(args[0], err)
		}
		fmt.Printf("Deleted instance %q\n", args[0])
		return nil
	}),
}

func instanceLookupError(id string, err error) error {
	var notFound *store.InstanceNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("no instance %q, run 'shaclgen instance list' to see stored instances", id)
	}
	return err
}

func init() {
	instanceCreateCmd.Flags().StringArrayVar(&instanceAssignments, "set", nil,
		"field=value assignment (repeatable)")

	instanceCmd.AddCommand(instanceCreateCmd)
	instanceCmd.AddCommand(instanceCheckCmd)
	instanceCmd.AddCommand(instanceListCmd)
	instanceCmd.AddCommand(instanceDeleteCmd)
	rootCmd.AddCommand(instanceCmd)
}
