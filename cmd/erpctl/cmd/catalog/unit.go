package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/view"
	"github.com/liyang960414/erp/pkg/sdk"
)

// UnitCmd is the parent command for units of measure
var UnitCmd = &cobra.Command{
	Use:     "unit",
	Aliases: []string{"units"},
	Short:   "Manage units of measure and unit groups",
}

var unitListGroupID int64

var unitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List units",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		var units []sdk.Unit
		if unitListGroupID > 0 {
			units, err = erpClient.ListUnitsByGroup(cmd.Context(), unitListGroupID)
		} else {
			units, err = erpClient.ListUnits(cmd.Context())
		}
		if err != nil {
			return err
		}
		return view.Units(cmd.OutOrStdout(), units)
	},
}

var unitGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a unit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		u, err := erpClient.GetUnit(cmd.Context(), id)
		if err != nil {
			return err
		}
		return view.Units(cmd.OutOrStdout(), []sdk.Unit{*u})
	},
}

var (
	unitCreateInput    sdk.CreateUnitInput
	unitCreateDisabled bool
)

var unitCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := unitCreateInput
		input.Code = strings.TrimSpace(input.Code)
		input.Name = strings.TrimSpace(input.Name)
		if input.Code == "" || input.Name == "" || input.UnitGroupID <= 0 {
			return errors.New("--code, --name and --group are required")
		}
		if unitCreateDisabled {
			enabled := false
			input.Enabled = &enabled
		}
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		u, err := erpClient.CreateUnit(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created unit %s (id %d)\n", u.Code, u.ID)
		return nil
	},
}

var (
	unitUpdateName        string
	unitUpdateGroupID     int64
	unitUpdateEnabled     bool
	unitUpdateNumerator   float64
	unitUpdateDenominator float64
)

var unitUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a unit",
	Long:  `Updates a unit. Only the flags given on the command line are sent.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		var input sdk.UpdateUnitInput
		if flags.Changed("name") {
			input.Name = &unitUpdateName
		}
		if flags.Changed("group") {
			input.UnitGroupID = &unitUpdateGroupID
		}
		if flags.Changed("enabled") {
			input.Enabled = &unitUpdateEnabled
		}
		if flags.Changed("numerator") {
			input.ConversionNumerator = &unitUpdateNumerator
		}
		if flags.Changed("denominator") {
			if unitUpdateDenominator == 0 {
				return errors.New("--denominator must not be zero")
			}
			input.ConversionDenominator = &unitUpdateDenominator
		}
		if input == (sdk.UpdateUnitInput{}) {
			return errors.New("nothing to update")
		}

		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		u, err := erpClient.UpdateUnit(cmd.Context(), id, input)
		if err != nil {
			return err
		}
		return view.Units(cmd.OutOrStdout(), []sdk.Unit{*u})
	},
}

var unitDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a unit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := erpClient.DeleteUnit(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted unit %d\n", id)
		return nil
	},
}

var unitGroupCmd = &cobra.Command{
	Use:     "group",
	Aliases: []string{"groups"},
	Short:   "Manage unit groups",
}

var unitGroupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List unit groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		groups, err := erpClient.ListUnitGroups(cmd.Context())
		if err != nil {
			return err
		}
		return view.UnitGroups(cmd.OutOrStdout(), groups)
	},
}

var unitGroupGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a unit group and its units",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		group, err := erpClient.GetUnitGroup(cmd.Context(), id)
		if err != nil {
			return err
		}
		units, err := erpClient.ListUnitsByGroup(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := view.UnitGroups(out, []sdk.UnitGroup{*group}); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return view.Units(out, units)
	},
}

var unitGroupCreateInput sdk.CreateUnitGroupInput

var unitGroupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a unit group",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := unitGroupCreateInput
		input.Code = strings.TrimSpace(input.Code)
		input.Name = strings.TrimSpace(input.Name)
		if input.Code == "" || input.Name == "" {
			return errors.New("--code and --name are required")
		}
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		g, err := erpClient.CreateUnitGroup(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created unit group %s (id %d)\n", g.Code, g.ID)
		return nil
	},
}

var unitGroupUpdateName, unitGroupUpdateDescription string

var unitGroupUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a unit group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var input sdk.UpdateUnitGroupInput
		if cmd.Flags().Changed("name") {
			input.Name = &unitGroupUpdateName
		}
		if cmd.Flags().Changed("description") {
			input.Description = &unitGroupUpdateDescription
		}
		if input == (sdk.UpdateUnitGroupInput{}) {
			return errors.New("nothing to update")
		}

		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		g, err := erpClient.UpdateUnitGroup(cmd.Context(), id, input)
		if err != nil {
			return err
		}
		return view.UnitGroups(cmd.OutOrStdout(), []sdk.UnitGroup{*g})
	},
}

var unitGroupDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a unit group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := erpClient.DeleteUnitGroup(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted unit group %d\n", id)
		return nil
	},
}

func init() {
	UnitCmd.AddCommand(unitListCmd)
	UnitCmd.AddCommand(unitGetCmd)
	UnitCmd.AddCommand(unitCreateCmd)
	UnitCmd.AddCommand(unitUpdateCmd)
	UnitCmd.AddCommand(unitDeleteCmd)
	UnitCmd.AddCommand(unitGroupCmd)

	unitGroupCmd.AddCommand(unitGroupListCmd)
	unitGroupCmd.AddCommand(unitGroupGetCmd)
	unitGroupCmd.AddCommand(unitGroupCreateCmd)
	unitGroupCmd.AddCommand(unitGroupUpdateCmd)
	unitGroupCmd.AddCommand(unitGroupDeleteCmd)

	unitListCmd.Flags().Int64Var(&unitListGroupID, "group", 0, "Only units in this unit group ID")

	unitCreateCmd.Flags().StringVar(&unitCreateInput.Code, "code", "", "Unit code")
	unitCreateCmd.Flags().StringVar(&unitCreateInput.Name, "name", "", "Unit name")
	unitCreateCmd.Flags().Int64Var(&unitCreateInput.UnitGroupID, "group", 0, "Unit group ID")
	unitCreateCmd.Flags().BoolVar(&unitCreateDisabled, "disabled", false, "Create the unit disabled")

	unitUpdateCmd.Flags().StringVar(&unitUpdateName, "name", "", "New name")
	unitUpdateCmd.Flags().Int64Var(&unitUpdateGroupID, "group", 0, "Move to this unit group ID")
	unitUpdateCmd.Flags().BoolVar(&unitUpdateEnabled, "enabled", true, "Enable or disable the unit (--enabled=false)")
	unitUpdateCmd.Flags().Float64Var(&unitUpdateNumerator, "numerator", 0, "Conversion numerator to the group's base unit")
	unitUpdateCmd.Flags().Float64Var(&unitUpdateDenominator, "denominator", 1, "Conversion denominator to the group's base unit")

	unitGroupCreateCmd.Flags().StringVar(&unitGroupCreateInput.Code, "code", "", "Unit group code")
	unitGroupCreateCmd.Flags().StringVar(&unitGroupCreateInput.Name, "name", "", "Unit group name")
	unitGroupCreateCmd.Flags().StringVar(&unitGroupCreateInput.Description, "description", "", "Description")

	unitGroupUpdateCmd.Flags().StringVar(&unitGroupUpdateName, "name", "", "New name")
	unitGroupUpdateCmd.Flags().StringVar(&unitGroupUpdateDescription, "description", "", "New description")
}
