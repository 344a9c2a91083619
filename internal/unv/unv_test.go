package unv

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brepkit/pkg/geom"
)

func TestWrite_Layout(t *testing.T) {
	m := Mesh{
		Nodes: []geom.Point{geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(0, 1, 0)},
		Elements: []Element{
			{Type: ElemRod, Nodes: []int{1, 2}},
			{Type: ElemTriangle, Nodes: []int{1, 2, 3}},
		},
	}
	var b strings.Builder
	require.NoError(t, Write(&b, m))

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Equal(t, []string{
		"    -1",
		"  2411",
		"         1         1         1        11",
		"   0.0000000000000000E+00   0.0000000000000000E+00   0.0000000000000000E+00",
		"         2         1         1        11",
		"   1.0000000000000000E+00   0.0000000000000000E+00   0.0000000000000000E+00",
		"         3         1         1        11",
		"   0.0000000000000000E+00   1.0000000000000000E+00   0.0000000000000000E+00",
		"    -1",
		"    -1",
		"  2412",
		"         1        11         2         1         7         2",
		"         0         0         0",
		"         1         2",
		"         2        91         2         1         7         3",
		"         1         2         3",
		"    -1",
	}, lines)
}

func TestWrite_WrapsLongConnectivity(t *testing.T) {
	m := Mesh{Elements: []Element{{Type: 115, Nodes: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}}}}
	var b strings.Builder
	require.NoError(t, Write(&b, m))
	assert.Contains(t, b.String(), "         8\n         9\n")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesWriterError(t *testing.T) {
	err := Write(failingWriter{}, Mesh{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset 2411")
}
