package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	tt "github.com/speclint/speclint/internal/types"
	"github.com/speclint/speclint/lint"
)

// initCmd: speclint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".speclint.yaml"
	}

	config := lint.Config{
		Name: "speclint",
		Rules: map[string]tt.ConfigRule{
			"sort-metadata":       {Severity: tt.SeverityWarning},
			"let-before-examples": {Severity: tt.SeverityWarning},
			"create-list":         {Severity: tt.SeverityWarning},
		},
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configurationPath, d, 0o644)
}
