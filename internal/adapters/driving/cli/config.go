package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// defaultSecretKey is the key set-key writes when none is named.
//
//nolint:gosec // G101: config key name, not a credential.
const defaultSecretKey = "meilisearch.api_key"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long: `Show and change the settings stored in config.toml.

Every key can be overridden by an environment variable: meilisearch.url is
read from TSS_MEILISEARCH_URL. A .env file in the working directory is
loaded first.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Store a credential read without echo",
	Long: `Reads a credential from the terminal without echoing it and stores it.
Defaults to meilisearch.api_key. Input may also be piped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigSetKey,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Printf("Settings (%s)\n\n", settingsService.Path())
	section := ""
	for _, v := range values {
		if s, _, _ := strings.Cut(v.Key, "."); s != section {
			if section != "" {
				cmd.Println()
			}
			section = s
			cmd.Printf("[%s]\n", section)
		}
		value := v.Masked()
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %-28s %s\n", v.Key, value)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s.\n", args[0])
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}
	key := defaultSecretKey
	if len(args) == 1 {
		key = args[0]
	}

	cmd.Printf("Enter value for %s: ", key)
	secret := readSecret(cmd.InOrStdin())
	cmd.Println()
	if secret == "" {
		return fmt.Errorf("no value entered; %s unchanged", key)
	}

	if err := settingsService.Set(key, secret); err != nil {
		return err
	}
	cmd.Printf("Stored %s in %s.\n", key, settingsService.Path())
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

// readSecret reads one line without echo when in is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	input, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(input)
}
