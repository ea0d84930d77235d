package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liyang960414/erp/internal/view"
	"github.com/liyang960414/erp/pkg/sdk"
)

// MaterialCmd is the parent command for material queries
var MaterialCmd = &cobra.Command{
	Use:     "material",
	Aliases: []string{"materials"},
	Short:   "Query materials",
}

var listGroupID int64

var materialListCmd = &cobra.Command{
	Use:   "list",
	Short: "List materials",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		var materials []sdk.Material
		if listGroupID > 0 {
			materials, err = erpClient.ListMaterialsByGroup(cmd.Context(), listGroupID)
		} else {
			materials, err = erpClient.ListMaterials(cmd.Context())
		}
		if err != nil {
			return err
		}
		return view.Materials(cmd.OutOrStdout(), materials)
	},
}

var materialGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a material",
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
		m, err := erpClient.GetMaterial(cmd.Context(), id)
		if err != nil {
			return err
		}
		return view.Materials(cmd.OutOrStdout(), []sdk.Material{*m})
	},
}

var searchLimit int

var materialSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search materials by code or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		materials, err := erpClient.SearchMaterials(cmd.Context(), args[0], searchLimit)
		if err != nil {
			return err
		}
		return view.Materials(cmd.OutOrStdout(), materials)
	},
}

var materialGroupCmd = &cobra.Command{
	Use:     "group",
	Aliases: []string{"groups"},
	Short:   "Query material groups",
}

var materialGroupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List material groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		erpClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		groups, err := erpClient.ListMaterialGroups(cmd.Context())
		if err != nil {
			return err
		}
		return view.MaterialGroups(cmd.OutOrStdout(), groups)
	},
}

var materialGroupGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a material group and its materials",
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
		group, err := erpClient.GetMaterialGroup(cmd.Context(), id)
		if err != nil {
			return err
		}
		materials, err := erpClient.ListMaterialsByGroup(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := view.MaterialGroups(out, []sdk.MaterialGroup{*group}); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return view.Materials(out, materials)
	},
}

func init() {
	MaterialCmd.AddCommand(materialListCmd)
	MaterialCmd.AddCommand(materialGetCmd)
	MaterialCmd.AddCommand(materialSearchCmd)
	MaterialCmd.AddCommand(materialGroupCmd)
	materialGroupCmd.AddCommand(materialGroupListCmd)
	materialGroupCmd.AddCommand(materialGroupGetCmd)
	materialListCmd.Flags().Int64Var(&listGroupID, "group", 0, "Only materials in this material group ID")
	materialSearchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum results")
}
