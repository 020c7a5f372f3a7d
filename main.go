package main

import (
	"os"

	"github.com/smazurov/dvbtune/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
