// planctl is the command-line front end of the planner: it loads the
// catalog from disk, computes a production plan and renders the tree.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/veldra/planforge/internal/catalog"
	"github.com/veldra/planforge/internal/config"
	"github.com/veldra/planforge/internal/domain"
	"github.com/veldra/planforge/internal/logger"
	"github.com/veldra/planforge/internal/planner"
)

func main() {
	logger.Init(logger.DefaultConfig())

	cmd := &cli.Command{
		Name:  "planctl",
		Usage: "Compute recursive production requirements from a recipe catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data-dir",
				Value: config.DefaultDataDir,
				Usage: "directory with items/recipes/machines definition files",
			},
			&cli.StringFlag{
				Name:  "schema-dir",
				Value: config.DefaultSchemaDir,
				Usage: "directory with JSON schemas (empty disables schema validation)",
			},
		},
		Commands: []*cli.Command{
			planCmd(),
			itemsCmd(),
			recipesCmd(),
			validateCmd(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadService(cmd *cli.Command) (planner.Service, error) {
	loader := catalog.NewLoader(cmd.String("schema-dir"))
	cat, err := loader.Load(cmd.String("data-dir"))
	if err != nil {
		return nil, err
	}
	return planner.NewServiceWithCatalog(cat, 0, 0), nil
}

func planCmd() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Compute the production plan for an item at a target rate",
		ArgsUsage: "<item-id>",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:     "rate",
				Usage:    "target output rate in units per time-unit",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "mode",
				Value: string(domain.ModeMerged),
				Usage: "projection mode: merged or per-branch",
			},
			&cli.StringSliceFlag{
				Name:  "select",
				Usage: "recipe selection as item=recipe, repeatable",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			itemID := cmd.Args().First()
			if itemID == "" {
				return fmt.Errorf("missing <item-id> argument")
			}

			selections, err := parseSelections(cmd.StringSlice("select"))
			if err != nil {
				return err
			}

			service, err := loadService(cmd)
			if err != nil {
				return err
			}

			result, err := service.Plan(ctx, domain.PlanRequest{
				ItemID:     itemID,
				Rate:       cmd.Float64("rate"),
				Mode:       domain.ProjectionMode(cmd.String("mode")),
				Selections: selections,
			})
			if err != nil {
				return err
			}

			renderPlan(os.Stdout, result)
			return nil
		},
	}
}

func itemsCmd() *cli.Command {
	return &cli.Command{
		Name:  "items",
		Usage: "List all catalog items",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			service, err := loadService(cmd)
			if err != nil {
				return err
			}
			for _, item := range service.Items(ctx) {
				kind := "crafted"
				if item.Raw {
					kind = "raw"
				}
				fmt.Printf("%-24s %s\n", item.ID, kind)
			}
			return nil
		},
	}
}

func recipesCmd() *cli.Command {
	return &cli.Command{
		Name:      "recipes",
		Usage:     "List the recipes producing an item",
		ArgsUsage: "<item-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			itemID := cmd.Args().First()
			if itemID == "" {
				return fmt.Errorf("missing <item-id> argument")
			}

			service, err := loadService(cmd)
			if err != nil {
				return err
			}

			recipes, err := service.RecipesFor(ctx, itemID)
			if err != nil {
				return err
			}
			if len(recipes) == 0 {
				fmt.Printf("%s has no recipes (raw material)\n", itemID)
				return nil
			}
			for _, r := range recipes {
				renderRecipe(os.Stdout, r)
			}
			return nil
		},
	}
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Load the catalog and report its contents",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			service, err := loadService(cmd)
			if err != nil {
				return err
			}
			info := service.CatalogInfo(ctx)
			fmt.Printf("Catalog OK: %d items, %d recipes, %d machine types (hash %.12s)\n",
				info.Items, info.Recipes, info.Machines, info.Hash)
			return nil
		},
	}
}

// parseSelections turns repeated item=recipe flags into the selection map.
func parseSelections(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	selections := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		item, recipe, ok := strings.Cut(pair, "=")
		if !ok || item == "" || recipe == "" {
			return nil, fmt.Errorf("invalid --select value %q, expected item=recipe", pair)
		}
		selections[item] = recipe
	}
	return selections, nil
}
