package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/gridtoys/validate"
)

var errInvalidPresets = errors.New("some configurations have errors")

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate every preset in the config directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output", Sources: cli.EnvVars("NO_COLOR")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			results, err := validate.Dir(optionsFrom(cmd).configDir)
			if err != nil {
				return err
			}
			if !printValidation(os.Stdout, results, aurora.NewAurora(!cmd.Bool("no-color"))) {
				return errInvalidPresets
			}
			return nil
		},
	}
}

// printValidation writes a concise report and returns whether every preset
// is valid.
func printValidation(w io.Writer, results []validate.Result, au aurora.Aurora) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, au.Green("✅ VALID"))
			for _, info := range result.Notes {
				fmt.Fprintln(w, "  "+info)
			}
			continue
		}

		allValid = false
		fmt.Fprintln(w, au.Red("❌ INVALID"))
		for _, msg := range result.Errors {
			fmt.Fprintln(w, "  ❌ "+msg)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, au.Green("✅ All configurations are valid!"))
	} else {
		fmt.Fprintln(w, au.Red("❌ Some configurations have errors"))
	}
	return allValid
}
