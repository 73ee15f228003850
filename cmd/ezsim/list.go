// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	hw "github.com/sideprojectslab/ezhdl"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available designs.",
	Run: func(cmd *cobra.Command, args []string) {
		signals := getFlag(cmd, "signals")
		for _, n := range designNames() {
			fmt.Printf("%-10s %s\n", n, designs[n].help)
			if !signals {
				continue
			}
			sim, err := hw.New(nil)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err = build(n, sim.Top(n)); err != nil {
				fmt.Println(err)
				continue
			}
			for _, s := range sim.Signals() {
				fmt.Printf("    %-28s %-7s %s\n", s.FullName(), s.Dir(), hw.TypeOf(s.Now()))
			}
		}
	},
}

func init() {
	listCmd.Flags().BoolP("signals", "s", false, "also list the signals of each design")
	rootCmd.AddCommand(listCmd)
}
