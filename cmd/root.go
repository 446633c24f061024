package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// cfgPath is the optional HCL config file; empty means "use moosepick.hcl if
// it exists".
var cfgPath string

var rootCmd = &cobra.Command{
	Use:     "moosepick",
	Short:   "Pick the MOOSE objects a simulation task needs and render their input-deck syntax",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to an HCL config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
