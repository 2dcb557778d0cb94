package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/fsk/internal/ui"
)

var styles = ui.NewStyles(ui.DefaultTheme)

func main() {
	cmd := &cli.Command{
		Name:  "fsk",
		Usage: "Fast Simple Knowledge: manage Markdown notes with speed and simplicity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "$HOME/.fsk/config.yaml",
				Sources:     cli.EnvVars("FSK_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			writeCommand(),
			getCommand(),
			listCommand(),
			searchCommand(),
			removeCommand(),
			moveCommand(),
			exportCommand(),
			importCommand(),
			watchCommand(),
			mcpCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", styles.Error.Render("✘"), err)
		os.Exit(1)
	}
}
