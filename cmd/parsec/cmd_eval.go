package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an integer expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := newCalculator()
			res, err := calc.Eval(strings.Join(args, " "), nil)
			if err != nil {
				return err
			}
			fmt.Println(res.value)
			return nil
		},
	}
}
