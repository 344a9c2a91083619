// Package unv writes I-DEAS universal files (datasets 2411 and 2412).
package unv

import (
	"fmt"
	"io"

	"github.com/joshuapare/brepkit/pkg/geom"
)

// Element type identifiers of dataset 2412.
const (
	ElemRod         = 11
	ElemTriangle    = 91
	ElemQuadrangle  = 94
	ElemTetrahedron = 111
)

// delimiter opens and closes each dataset.
const delimiter = "    -1"

// Element is one mesh element with 1-based node labels.
type Element struct {
	Type  int
	Nodes []int
}

// Mesh is the content of a universal file.
type Mesh struct {
	Nodes    []geom.Point
	Elements []Element
}

// Write writes the node dataset followed by the element dataset.
func Write(w io.Writer, m Mesh) error {
	if err := writeNodes(w, m.Nodes); err != nil {
		return fmt.Errorf("unv: dataset 2411: %w", err)
	}
	if err := writeElements(w, m.Elements); err != nil {
		return fmt.Errorf("unv: dataset 2412: %w", err)
	}
	return nil
}

func writeNodes(w io.Writer, nodes []geom.Point) error {
	if _, err := fmt.Fprintf(w, "%s\n  2411\n", delimiter); err != nil {
		return err
	}
	for i, p := range nodes {
		if _, err := fmt.Fprintf(w, "%10d%10d%10d%10d\n%25.16E%25.16E%25.16E\n",
			i+1, 1, 1, 11, p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s\n", delimiter)
	return err
}

func writeElements(w io.Writer, elems []Element) error {
	if _, err := fmt.Fprintf(w, "%s\n  2412\n", delimiter); err != nil {
		return err
	}
	for i, e := range elems {
		if _, err := fmt.Fprintf(w, "%10d%10d%10d%10d%10d%10d\n",
			i+1, e.Type, 2, 1, 7, len(e.Nodes)); err != nil {
			return err
		}
		if e.Type == ElemRod {
			// beam elements carry an orientation record
			if _, err := fmt.Fprintf(w, "%10d%10d%10d\n", 0, 0, 0); err != nil {
				return err
			}
		}
		for j, n := range e.Nodes {
			if _, err := fmt.Fprintf(w, "%10d", n); err != nil {
				return err
			}
			if (j+1)%8 == 0 || j == len(e.Nodes)-1 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintf(w, "%s\n", delimiter)
	return err
}
