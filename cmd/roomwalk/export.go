package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/models"
	"github.com/taigrr/roomwalk/pkg/scene"
	"github.com/taigrr/roomwalk/pkg/surface"
)

var exportFloor, exportWall string

var exportCmd = &cobra.Command{
	Use:   "export <out.glb>",
	Short: "Write the room as a binary glTF file",
	Long:  "Export every room primitive as a box mesh with its material. Floor and wall default to the catalog defaults.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFloor, "floor", "", "floor material id")
	exportCmd.Flags().StringVar(&exportWall, "wall", "", "wall material id")
	rootCmd.AddCommand(exportCmd)
}

// assign sets class to id after checking the catalog offers it. An empty id
// keeps the current assignment.
func assign(cat *catalog.Catalog, a catalog.Assignment, class surface.Class, id string) error {
	if id == "" {
		return nil
	}
	if err := cat.Validate(class, id); err != nil {
		return fmt.Errorf("--%s: %w", class, err)
	}
	a[class] = id
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	a := cat.DefaultAssignment()
	if err := assign(cat, a, surface.Floor, exportFloor); err != nil {
		return err
	}
	if err := assign(cat, a, surface.Wall, exportWall); err != nil {
		return err
	}

	meshes := models.FromScene(scene.NewRoom(cfg.Room), cat, a)
	if err := models.ExportGLB(args[0], meshes); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d meshes to %s (floor %s, wall %s)\n",
		len(meshes), args[0], a[surface.Floor], a[surface.Wall])
	return nil
}
