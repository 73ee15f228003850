// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	hw "github.com/sideprojectslab/ezhdl"
	"github.com/sideprojectslab/ezhdl/control"
	"github.com/sideprojectslab/ezhdl/vcd"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] design",
	Short: "Simulate a design.",
	Long: `Simulate one of the example designs until no event is pending or the
time given by --until is reached. In interactive mode, press p to pause or
resume, q to stop, d to dump all signals and r to force a delta cycle.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDesign(cmd, args[0]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func runDesign(cmd *cobra.Command, name string) error {
	opts := hw.Options{
		Resolution: getString(cmd, "timescale"),
		CycleLimit: getInt(cmd, "cycle-limit"),
		ForceDump:  getFlag(cmd, "force-dump"),
		Logger:     log.StandardLogger(),
	}
	if u := getString(cmd, "until"); u != "" {
		t, err := hw.ParseTime(u, opts.Resolution)
		if err != nil {
			return errors.Wrap(err, "--until")
		}
		opts.StopAt = t
	}
	if path := getString(cmd, "vcd"); path != "" {
		w, err := vcd.Create(path)
		if err != nil {
			return err
		}
		opts.Observers = append(opts.Observers, w)
	}
	if getFlag(cmd, "interactive") {
		kb, err := control.NewKeyboard(log.StandardLogger())
		if err != nil {
			return err
		}
		defer kb.Close()
		opts.Controller = kb
	}

	sim, err := hw.New(&opts)
	if err != nil {
		return err
	}
	if err = build(name, sim.Top(name)); err != nil {
		return err
	}
	return sim.Run()
}

func init() {
	runCmd.Flags().String("vcd", "", "write waveforms to the given VCD file")
	runCmd.Flags().String("timescale", "ps", "simulation resolution (ps, ns, us, ms or s)")
	runCmd.Flags().String("until", "1us", "stop time, e.g. 500ns; empty means no limit")
	runCmd.Flags().Int("cycle-limit", hw.DefaultCycleLimit, "maximum number of delta cycles per time step")
	runCmd.Flags().BoolP("interactive", "i", false, "enable keyboard control")
	runCmd.Flags().Bool("force-dump", false, "dump all signals at startup")
	rootCmd.AddCommand(runCmd)
}
