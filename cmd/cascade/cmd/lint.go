package cmd

import (
	"fmt"

	"github.com/go-drift/cascade/pkg/stylesheet"
)

func init() {
	RegisterCommand(&Command{
		Name:  "lint",
		Short: "Check stylesheets for errors",
		Long: `Parse stylesheets and check every declaration against the registered
properties. Without arguments the stylesheets listed in the project file
are checked.`,
		Usage: "cascade lint [sheet...]",
		Run:   runLint,
	})
}

func runLint(args []string) error {
	paths := args
	if len(paths) == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		paths = cfg.Stylesheets
	}
	if len(paths) == 0 {
		return fmt.Errorf("no stylesheets given and none configured")
	}

	sheets, err := stylesheet.LoadAll(paths...)
	if err != nil {
		return err
	}
	if err := stylesheet.Validate(sheets...); err != nil {
		return err
	}

	rules := 0
	for _, s := range sheets {
		rules += len(s.Rules)
	}
	fmt.Fprintf(stdout, "%d stylesheet(s), %d rule(s): ok\n", len(sheets), rules)
	return nil
}
