/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: listformatters.go
Description: The "list-formatters" command: enumerates the registered
Formatter adapters along with the options and base styles each exposes.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/whatstyle-go/pkg/formatter"
	"github.com/spf13/cobra"
)

// registeredFormatters builds a fresh instance of every known adapter for
// listing purposes. clang-format is included only when its binary resolves
// on this machine.
func registeredFormatters() map[string]formatter.Formatter {
	out := map[string]formatter.Formatter{
		"indent": formatter.NewIndent(),
	}
	if cf, err := formatter.NewClangFormat("", "", 0); err == nil {
		out["clang-format"] = cf
	}
	return out
}

// RunListFormatters implements `whatstyle list-formatters`.
func RunListFormatters(cmd *cobra.Command, args []string) error {
	names := []string{"clang-format", "indent"}

	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", name)

		var f formatter.Formatter
		switch name {
		case "indent":
			f = formatter.NewIndent()
		case "clang-format":
			cf, err := formatter.NewClangFormat("", "", 0)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "  unavailable: %v\n", err)
				continue
			}
			f = cf
		}

		fmt.Fprintf(cmd.OutOrStdout(), "  base styles: %v\n", f.Styles())
		fmt.Fprintln(cmd.OutOrStdout(), "  options:")
		for _, opt := range f.Options() {
			fmt.Fprintf(cmd.OutOrStdout(), "    %-40s %v\n", opt.Name, opt.Values())
		}
	}

	return nil
}
