package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	cli "github.com/neboloop/nebo-contacts/cmd/contacts"
)

//go:embed etc/contacts.yaml
var embeddedConfig []byte

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	if err := cli.SetupRootCmd(embeddedConfig).Execute(); err != nil {
		if !errors.Is(err, cli.ErrToolFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
