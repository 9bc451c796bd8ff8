package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/surface"
)

var materialsClass string

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the material catalog",
	Long:  "Show the materials offered for each surface class, in picker order, with the class default marked.",
	Args:  cobra.NoArgs,
	RunE:  runMaterials,
}

func init() {
	materialsCmd.Flags().StringVar(&materialsClass, "class", "", "only list this class (floor, wall, ceiling)")
	rootCmd.AddCommand(materialsCmd)
}

func runMaterials(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	classes := surface.Classes()
	if materialsClass != "" {
		c, err := surface.ParseClass(materialsClass)
		if err != nil {
			return err
		}
		classes = []surface.Class{c}
	}

	out := cmd.OutOrStdout()
	for i, c := range classes {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printClass(out, cat, c)
	}
	return nil
}

func printClass(w io.Writer, cat *catalog.Catalog, c surface.Class) {
	if m, ok := cat.Fixed(c); ok {
		fmt.Fprintf(w, "%s (fixed)\n", c.Title())
		printMaterial(w, m, false)
		return
	}
	if !cat.Editable(c) {
		fmt.Fprintf(w, "%s (no materials)\n", c.Title())
		return
	}

	def, _ := cat.Default(c)
	fmt.Fprintf(w, "%s\n", c.Title())
	for _, m := range cat.ForClass(c) {
		printMaterial(w, m, m.ID == def)
	}
}

func printMaterial(w io.Writer, m catalog.Material, def bool) {
	mark := " "
	if def {
		mark = "*"
	}
	fmt.Fprintf(w, "  %s %-12s %-14s %s  roughness %.2f  metalness %.2f\n",
		mark, m.ID, m.Name, m.Hex, m.Roughness, m.Metalness)
}
