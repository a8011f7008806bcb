// cmd/scuart_sim runs the polled driver against the register simulator and
// prints what it did to the hardware.
package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/jangala-dev/tinygo-scuart/internal/config"
)

var (
	rootOpts = struct {
		config string
		trace  bool
	}{}

	rootCmd = &cobra.Command{
		Use:           "scuart_sim",
		Short:         "Exercise the SC8810 UART driver on simulated registers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootOpts.config, "config", "c", "", "YAML config file (sim section)")
	rootCmd.PersistentFlags().BoolVarP(&rootOpts.trace, "trace", "t", false, "print every register access")
	rootCmd.AddCommand(initCmd, writeCmd, readCmd, divisorCmd)
}

func loadConfig() (config.Config, error) {
	return config.Load(rootOpts.config)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("scuart_sim: ")
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
