package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/starford/fsk/internal"
	"github.com/starford/fsk/internal/mcpserver"
	"github.com/starford/fsk/internal/models"
	"github.com/starford/fsk/internal/noteservice"
	"github.com/starford/fsk/internal/watcher"
)

const ruleWidth = 40

func setup(cmd *cli.Command) (*noteservice.Service, *internal.Config, *slog.Logger, error) {
	return internal.Setup(cmd.String("config"), cmd.Bool("verbose"))
}

func requireArg(cmd *cli.Command, n int, name string) (string, error) {
	v := cmd.Args().Get(n)
	if v == "" {
		return "", fmt.Errorf("missing required argument: <%s>", name)
	}
	return v, nil
}

func writeCommand() *cli.Command {
	return &cli.Command{
		Name:      "write",
		Aliases:   []string{"new", "edit"},
		Usage:     "Create or edit a note (supports nested paths like linux/kernel)",
		ArgsUsage: "<title>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			title, err := requireArg(cmd, 0, "title")
			if err != nil {
				return err
			}
			svc, _, _, err := setup(cmd)
			if err != nil {
				return err
			}
			_, err = svc.Edit(ctx, title)
			return err
		},
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Aliases:   []string{"cat"},
		Usage:     "Display the content of a note on stdout",
		ArgsUsage: "<title>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			title, err := requireArg(cmd, 0, "title")
			if err != nil {
				return err
			}
			svc, _, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			detail, err := svc.Get(ctx, title)
			if err != nil {
				return err
			}
			logger.Debug("note read",
				slog.String("title", detail.Title),
				slog.String("checksum", detail.Checksum))
			if strings.TrimSpace(detail.Content) == "" {
				fmt.Println(styles.Dim.Render("Note is empty."))
				return nil
			}
			fmt.Print(detail.Content)
			if !strings.HasSuffix(detail.Content, "\n") {
				fmt.Println()
			}
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List all notes, or notes in a folder",
		ArgsUsage: "[folder]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, _, _, err := setup(cmd)
			if err != nil {
				return err
			}
			titles, err := svc.List(ctx, cmd.Args().First())
			if err != nil {
				return err
			}
			if len(titles) == 0 {
				fmt.Println(styles.Dim.Render("No notes found."))
				return nil
			}
			fmt.Println(styles.Header.Render("Your Knowledge Base:"))
			fmt.Println(styles.Rule(ruleWidth))
			for _, t := range titles {
				fmt.Printf("  %s %s\n", styles.Bullet.Render("•"), t)
			}
			fmt.Println(styles.Rule(ruleWidth))
			fmt.Printf("%d total notes\n", len(titles))
			return nil
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"find"},
		Usage:     "Search for a keyword in titles and note contents",
		ArgsUsage: "<keyword>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			keyword, err := requireArg(cmd, 0, "keyword")
			if err != nil {
				return err
			}
			svc, _, _, err := setup(cmd)
			if err != nil {
				return err
			}
			results, err := svc.Search(ctx, keyword)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Printf("%s %q\n", styles.Dim.Render("No results found for"), keyword)
				return nil
			}
			fmt.Printf("%s %q:\n", styles.Header.Render("Found matches for"), keyword)
			fmt.Println(styles.Rule(ruleWidth))
			printResults(results)
			fmt.Println(styles.Rule(ruleWidth))
			fmt.Printf("%d result(s) found\n", len(results))
			return nil
		},
	}
}

func printResults(results []models.SearchResult) {
	for _, r := range results {
		if r.TitleMatch {
			fmt.Printf("%s %s\n", styles.Marker.Render("▪"), styles.Title.Render(r.Title))
			continue
		}
		fmt.Printf("%s %s\n", styles.Marker.Render("▫"), r.Title)
		fmt.Printf("   %s %s\n", styles.Dim.Render("↳"), styles.Preview.Render(r.Preview))
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Delete a note (pruning empty folders) or a whole folder",
		ArgsUsage: "<title>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			title, err := requireArg(cmd, 0, "title")
			if err != nil {
				return err
			}
			svc, _, _, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := svc.Remove(ctx, title); err != nil {
				return err
			}
			fmt.Printf("Removed %q\n", title)
			return nil
		},
	}
}

func moveCommand() *cli.Command {
	return &cli.Command{
		Name:      "move",
		Aliases:   []string{"mv"},
		Usage:     "Rename a note, creating destination folders as needed",
		ArgsUsage: "<from> <to>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			from, err := requireArg(cmd, 0, "from")
			if err != nil {
				return err
			}
			to, err := requireArg(cmd, 1, "to")
			if err != nil {
				return err
			}
			svc, _, _, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := svc.Move(ctx, from, to); err != nil {
				return err
			}
			fmt.Printf("Moved %q to %q\n", from, to)
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Copy the vault (or one folder) to a destination directory",
		ArgsUsage: "<dest>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "folder",
				Usage: "Export only this folder (default: whole vault)",
			},
			&cli.BoolFlag{
				Name:  "html",
				Usage: "Render notes to HTML pages instead of copying raw files",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dest, err := requireArg(cmd, 0, "dest")
			if err != nil {
				return err
			}
			svc, _, _, err := setup(cmd)
			if err != nil {
				return err
			}
			folder := cmd.String("folder")
			if cmd.Bool("html") {
				if err := svc.ExportHTML(ctx, folder, dest); err != nil {
					return err
				}
			} else if err := svc.Export(ctx, folder, dest); err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", dest)
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Copy a directory tree into the vault",
		ArgsUsage: "<src>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			src, err := requireArg(cmd, 0, "src")
			if err != nil {
				return err
			}
			svc, _, _, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := svc.Import(ctx, src); err != nil {
				return err
			}
			fmt.Printf("Imported from %s\n", src)
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Watch the vault and print note changes until interrupted",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gCtx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return watcher.Watch(gCtx, cfg.Vault.Path, logger, func(ev models.NoteEvent) {
					fmt.Printf("%s %s\n", styles.Marker.Render(ev.Kind), ev.Title)
				})
			})
			return g.Wait()
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve note tools over the Model Context Protocol on stdin/stdout",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, _, _, err := setup(cmd)
			if err != nil {
				return err
			}
			return mcpserver.New(svc).ServeStdio()
		},
	}
}
