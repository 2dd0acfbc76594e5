// Command themekit manages the application theme.
package main

import (
	"os"

	"github.com/uamas/themekit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
