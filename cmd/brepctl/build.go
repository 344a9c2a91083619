package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/brepkit/pkg/mesh"
)

var (
	buildStepOut string
	buildUnvOut  string
)

func init() {
	cmd := newBuildCmd()
	cmd.Flags().StringVar(&buildStepOut, "step", "", "Write the model to this STEP file")
	cmd.Flags().StringVar(&buildUnvOut, "unv", "", "Mesh the model with the recipe settings and write a UNV file")
	rootCmd.AddCommand(cmd)
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <recipe.yaml>",
		Short: "Build a model and export it",
		Long: `The build command constructs the model described by a recipe, applies
its operations and writes the result as STEP and/or UNV.

Example:
  brepctl build bracket.yaml --step bracket.step
  brepctl build bracket.yaml --step bracket.step --unv bracket.unv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args)
		},
	}
}

func runBuild(args []string) error {
	if buildStepOut == "" && buildUnvOut == "" {
		return errors.New("nothing to do: pass --step and/or --unv")
	}

	printVerbose("Loading recipe: %s\n", args[0])
	r, err := loadRecipe(args[0])
	if err != nil {
		return err
	}
	s, err := r.build()
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}
	printVerbose("Built %s\n", s.Kind())

	if buildStepOut != "" {
		if err := s.ExportSTEP(buildStepOut, r.exportOptions()); err != nil {
			return err
		}
		printInfo("Wrote %s\n", buildStepOut)
	}
	if buildUnvOut != "" {
		m, err := mesh.Generate(r.meshControl(s, 0, 0, false))
		if err != nil {
			return err
		}
		if err := m.ExportUNV(buildUnvOut); err != nil {
			return err
		}
		printInfo("Wrote %s (%d nodes)\n", buildUnvOut, m.NumNodes())
	}
	return nil
}
