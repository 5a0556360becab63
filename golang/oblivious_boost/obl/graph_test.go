package obl

import (
	"bytes"
	"testing"

	"github.com/goccy/go-graphviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawGraph(t *testing.T) {
	tree := createTestSplitTree()
	stats := ComputeTreeStats(tree, []int{5}, nil)

	graphViz, graph, err := tree.DrawGraph(&stats)
	require.NoError(t, err)
	defer closeGraph(graphViz, graph)

	assert.Equal(t, 2*tree.GetLeafCount()-1, graph.NumberNodes())

	var buf bytes.Buffer
	require.NoError(t, graphViz.Render(graph, graphviz.XDOT, &buf))
	assert.Contains(t, buf.String(), "leaf  5")
	assert.Contains(t, buf.String(), "f_0 > 2")
}

func TestDrawGraphRejectsForeignStats(t *testing.T) {
	_, _, err := createTestSplitTree().DrawGraph(&TreeStats{LeafWeightsSum: []float64{1}})
	assert.Error(t, err)
}

func TestRenderTreesUnknownFormat(t *testing.T) {
	assert.Error(t, createTestModel().RenderTrees("tree", "bmp", t.TempDir()))
}
