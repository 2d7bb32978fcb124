package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidahq/aida/internal/schema"
)

type functionInfo struct {
	Name     string `json:"name"`
	Mode     string `json:"mode"`
	Optional bool   `json:"optional,omitempty"`
}

type moduleInfo struct {
	Name      string         `json:"name"`
	Functions []functionInfo `json:"functions"`
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List callable modules and functions",
	Long: `List every callable module and function with its argument mode,
so an agent can discover the API without documentation.

Modes: none (no arguments), positional (one id or date), object (one JSON
object).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := schema.NewRegistry()

		modules := make([]moduleInfo, 0, len(registry))
		for _, moduleName := range registry.Modules() {
			info := moduleInfo{Name: moduleName}
			for _, functionName := range registry.Functions(moduleName) {
				spec, _ := registry.Lookup(moduleName, functionName)
				info.Functions = append(info.Functions, functionInfo{
					Name:     functionName,
					Mode:     string(spec.Mode),
					Optional: spec.Optional,
				})
			}
			modules = append(modules, info)
		}

		if isJSONOutput() {
			outputSuccess(modules, &Meta{Count: len(modules)})
			return nil
		}

		for _, module := range modules {
			fmt.Printf("%s\n", module.Name)
			for _, function := range module.Functions {
				mode := function.Mode
				if function.Optional {
					mode += ", optional"
				}
				fmt.Printf("  %-24s (%s)\n", function.Name, mode)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}
