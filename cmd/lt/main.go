package main

import (
	"context"
	"fmt"
	"os"

	"learning-tracker/internal/cli"
)

func main() {
	app := cli.NewApp()
	defer app.Close()

	root := cli.NewRootCommand(app)
	if err := root.ExecuteContext(context.Background(), nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		app.Close()
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}
