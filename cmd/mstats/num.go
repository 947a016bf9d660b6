package main

import (
	"fmt"
	"strconv"

	"github.com/moodmelody/melodystats/internal/numeric"
	"github.com/spf13/cobra"
)

func numCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "num",
		Short: "Small numeric helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "fib <n>",
		Short: "Print the n-th Fibonacci number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid n: %w", err)
			}
			if n > 92 {
				return fmt.Errorf("fib(%d) overflows int64", n)
			}
			fmt.Println(numeric.Fib(n))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "prime <n>",
		Short: "Report whether n is prime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid n: %w", err)
			}
			fmt.Println(numeric.IsPrime(n))
			return nil
		},
	})

	return cmd
}
