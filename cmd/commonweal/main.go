package main

import (
	"os"

	"github.com/commonweal/commonweal/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
