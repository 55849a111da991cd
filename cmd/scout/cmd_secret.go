package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scout-engine/internal/secrets"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage API keys in the OS keychain",
}

var secretSetCmd = &cobra.Command{
	Use:   "set <serpapi|brave|gemini>",
	Short: "Store an API key read from stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		fmt.Printf("Paste %s API key and press enter: ", args[0])
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		if err := secrets.Set(args[0], strings.TrimSpace(line)); err != nil {
			return err
		}
		fmt.Printf("Stored %s key in keychain service %q\n", args[0], secrets.KeyringService)
		return nil
	},
}

var secretDeleteCmd = &cobra.Command{
	Use:   "delete <serpapi|brave|gemini>",
	Short: "Remove an API key from the keychain",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := secrets.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s key\n", args[0])
		return nil
	},
}

func init() {
	secretCmd.AddCommand(secretSetCmd)
	secretCmd.AddCommand(secretDeleteCmd)
}
