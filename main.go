package main

import (
	"context"
	"os"

	"github.com/tebeka/atexit"

	"github.com/ChainSafe/pmevo-compat/cmd"
)

func main() {
	app := cmd.NewApp()
	app.Name = os.Args[0]
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		atexit.Fatal(err)
	}
	atexit.Exit(0)
}
