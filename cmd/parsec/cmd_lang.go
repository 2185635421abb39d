package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsec/pkg/parsec"
	"parsec/pkg/stream"
	"parsec/pkg/token"
)

func newLangCmd() *cobra.Command {
	var probe string

	cmd := &cobra.Command{
		Use:   "lang <config...>",
		Short: "Validate a language definition file",
		Long: "Loads one or more JSON/YAML language definition files, later files " +
			"overriding earlier ones, and reports whether the result is usable.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := token.NewLoader(args).Load()
			if err != nil {
				return err
			}
			fmt.Printf("language definition ok (comments: line %q, block %q..%q)\n",
				def.CommentLine, def.CommentStart, def.CommentEnd)

			if probe != "" {
				tok := token.NewTokenParser(def)
				p := parsec.Then(tok.WhiteSpace(),
					parsec.SkipAfter(parsec.Many1(tok.Identifier()), parsec.EOF[rune]()))
				names, perr := parsec.Run(p, stream.NewRunes(probe), nil)
				if perr != nil {
					return perr
				}
				fmt.Printf("identifiers: %v\n", names)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&probe, "probe", "", "tokenize this text as identifiers with the loaded definition")
	return cmd
}
