package main

import (
	"os"

	"github.com/dynata/demandapi/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
