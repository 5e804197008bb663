// Package main provides the CLI entrypoint for uc-transformer.
//
// uc-transformer rewrites serializer and deserializer factory calls of a Go
// program into references to a generated library:
//   - Loads packages (AST + go/types) and recognizes factory calls by symbol
//   - Hoists each model into an exported package-level variable
//   - Replaces each call with a function of the generated package
//   - Plans and emits the generated library in one step
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

func main() {
	ctx := context.Background()

	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "uc-transformer [options] COMMAND",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogging(verbose)
		},
	}
	rootCmd.RunE = func(*cobra.Command, []string) error {
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
		os.Exit(1)

		return nil
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	commands := []command{
		&cmdTransform{},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				code := cmd.run(ctx, args)
				syncLogging()
				os.Exit(code)

				return nil
			},
		}
		rootCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	if _, err := rootCmd.ExecuteC(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
