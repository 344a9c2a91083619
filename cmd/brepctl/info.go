package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/brepkit/pkg/topo"
	"github.com/joshuapare/brepkit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <recipe.yaml>",
		Short: "Report the topology and measures of a model",
		Long: `The info command builds the model described by a recipe and displays
its kind, the number of sub-shapes of each kind and its length, area and volume.

Example:
  brepctl info bracket.yaml
  brepctl info bracket.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// kindCount is the size and extent of one sub-shape kind.
type kindCount struct {
	Kind   string `json:"kind"`
	Size   int    `json:"size"`
	Extent int    `json:"extent"`
}

// modelInfo is the report printed by the info command.
type modelInfo struct {
	Name   string      `json:"name,omitempty"`
	Kind   string      `json:"kind"`
	Counts []kindCount `json:"counts"`
	Length float64     `json:"length"`
	Area   float64     `json:"area"`
	Volume float64     `json:"volume"`
}

func describe(name string, s topo.Shape) (*modelInfo, error) {
	info := &modelInfo{Name: name, Kind: s.Kind().String()}
	for _, k := range types.Kinds {
		m, err := s.Map(k)
		if err != nil {
			return nil, fmt.Errorf("failed to map %s: %w", k, err)
		}
		if m.Size() == 0 {
			continue
		}
		info.Counts = append(info.Counts, kindCount{Kind: k.String(), Size: m.Size(), Extent: m.Extent()})
	}
	p, err := s.Properties()
	if err != nil {
		return nil, fmt.Errorf("failed to compute properties: %w", err)
	}
	info.Length, info.Area, info.Volume = p.Length, p.Area, p.Volume
	return info, nil
}

func runInfo(args []string) error {
	printVerbose("Loading recipe: %s\n", args[0])
	r, err := loadRecipe(args[0])
	if err != nil {
		return err
	}
	s, err := r.build()
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}
	info, err := describe(r.Name, s)
	if err != nil {
		return err
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nModel Information:\n")
	if info.Name != "" {
		printInfo("  Name: %s\n", info.Name)
	}
	printInfo("  Kind: %s\n", info.Kind)
	printInfo("\nSub-shapes:\n")
	for _, c := range info.Counts {
		printInfo("  %-10s %4d  (%d references)\n", c.Kind, c.Size, c.Extent)
	}
	printInfo("\nMeasures:\n")
	printInfo("  Length: %.6g\n", info.Length)
	printInfo("  Area:   %.6g\n", info.Area)
	printInfo("  Volume: %.6g\n", info.Volume)
	return nil
}
