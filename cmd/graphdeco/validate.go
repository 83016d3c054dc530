package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360/graphdeco/prefs"
	"github.com/c360/graphdeco/updater"
	"github.com/c360/graphdeco/updaterregistry"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check which configuration sections resolve to known updater types",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "configuration file to validate")
	_ = validateCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	source, err := prefs.LoadFile(validateConfigPath)
	if err != nil {
		return err
	}

	registry := updater.NewRegistry()
	updaterregistry.Register(registry)

	names, err := source.ChildNames()
	if err != nil {
		return fmt.Errorf("enumerate sections: %w", err)
	}

	unknown := 0
	for _, name := range names {
		typeName := source.Section(name).Get("type", "")
		switch {
		case typeName == "":
			unknown++
			cmd.Printf("%-24s no type key, will be skipped\n", name)
		default:
			if _, known := registry.Resolve(typeName); known {
				cmd.Printf("%-24s %s\n", name, typeName)
			} else {
				unknown++
				cmd.Printf("%-24s unknown type %q, will be skipped\n", name, typeName)
			}
		}
	}
	cmd.Printf("%d section(s), %d will be skipped\n", len(names), unknown)
	return nil
}
