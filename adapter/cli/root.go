// Package cli implements the bookd command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookd",
	Short: "Booking availability and slot commitment service",
	Long: `bookd computes bookable time slots for hosts and commits bookings
without double-booking, even under concurrent demand.

Hosts publish booking links with a schedule (duration, buffers, weekdays,
daily hours and a booking horizon); visitors pick a slot and bookd
guarantees at most one of them wins it.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
