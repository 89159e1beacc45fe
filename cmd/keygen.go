package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"NoYaRender/config"
	"NoYaRender/core/auth"
)

var keygenFlags struct {
	device string
	expiry string
	search string
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate or look up license keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		if keygenFlags.search != "" {
			matches, err := auth.SearchLog(cfg.LicenseFile, keygenFlags.search)
			if err != nil {
				return fmt.Errorf("failed to search license log: %w", err)
			}
			if len(matches) == 0 {
				fmt.Println("No entries found.")
				return nil
			}
			for _, line := range matches {
				fmt.Println(line)
			}
			return nil
		}

		device := keygenFlags.device
		if device == "" {
			device = auth.MachineID()
			fmt.Printf("Device ID (this machine): %s\n", device)
		}
		if keygenFlags.expiry == "" {
			return fmt.Errorf("--expiry is required when generating a key")
		}

		key := auth.GenerateKey(device, keygenFlags.expiry, cfg.LicenseSalt)
		if err := auth.AppendLog(cfg.LicenseFile, device, keygenFlags.expiry, key); err != nil {
			return err
		}

		fmt.Printf("License key for %s (valid through %s): %s\n", device, keygenFlags.expiry, key)
		return nil
	},
}

func init() {
	f := keygenCmd.Flags()
	f.StringVar(&keygenFlags.device, "device", "", "device ID (defaults to this machine)")
	f.StringVar(&keygenFlags.expiry, "expiry", "", "expiry date, YYYY-MM-DD")
	f.StringVar(&keygenFlags.search, "search", "", "search the license log for a device ID instead of generating")

	rootCmd.AddCommand(keygenCmd)
}
