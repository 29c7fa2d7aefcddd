// Command skillup-admin runs migrations and seeds the career path catalog.
package main

import (
	"os"

	"github.com/sakif/skillup/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
