package obl

import (
	"fmt"
	"path"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pkg/errors"
)

//splitDescription returns the label of an inner node for tree rendering as a graph
func splitDescription(level int, split Split) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln("depth: ", level))
	sb.WriteString(fmt.Sprintln("hash: ", fmt.Sprintf("%016x", split.GetHash())))
	sb.WriteString(split.String())
	return sb.String()
}

//leafDescription returns the label of a leaf for tree rendering as a graph
func leafDescription(leafIdx int, stats *TreeStats) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln("leaf ", leafIdx))
	if stats != nil {
		sb.WriteString(fmt.Sprintf("weight: %6.2f", stats.LeafWeightsSum[leafIdx]))
	}
	return sb.String()
}

func recurrentDraw(g *cgraph.Graph, tree SplitTree, stats *TreeStats, level, leafIdx int, name string, parentNode *cgraph.Node, edgeLabel string) error {
	currentNode, err := g.CreateNode(name)
	if err != nil {
		return errors.Wrapf(err, "creating node %s", name)
	}

	if parentNode != nil {
		edge, err := g.CreateEdge("", parentNode, currentNode)
		if err != nil {
			return errors.Wrapf(err, "creating edge to %s", name)
		}
		edge.SetLabel(edgeLabel)
	}

	if level == tree.GetDepth() {
		currentNode.SetLabel(leafDescription(leafIdx, stats))
		currentNode.SetShape(cgraph.BoxShape)
		return nil
	}

	currentNode.SetLabel(splitDescription(level, tree.Splits[level]))
	if err := recurrentDraw(g, tree, stats, level+1, leafIdx, name+"L", currentNode, "no"); err != nil {
		return err
	}
	return recurrentDraw(g, tree, stats, level+1, leafIdx|1<<level, name+"R", currentNode, "yes")
}

//DrawGraph builds the full binary tree of an oblivious tree. stats may be nil.
func (t SplitTree) DrawGraph(stats *TreeStats) (*graphviz.Graphviz, *cgraph.Graph, error) {
	if stats != nil && len(stats.LeafWeightsSum) != t.GetLeafCount() {
		return nil, nil, errors.Errorf("%d leaf weights for %d leaves", len(stats.LeafWeightsSum), t.GetLeafCount())
	}
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	if err != nil {
		_ = graphViz.Close()
		return nil, nil, errors.Wrap(err, "creating graph")
	}

	if err := recurrentDraw(graph, t, stats, 0, 0, "n", nil, ""); err != nil {
		closeGraph(graphViz, graph)
		return nil, nil, err
	}
	return graphViz, graph, nil
}

var graphvizFormats = map[string]graphviz.Format{
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
	"dot": graphviz.XDOT,
}

//RenderTrees renders every tree of the model into picturesDirectory.
func (m Model) RenderTrees(dumpPrefix, figureType, picturesDirectory string) error {
	graphvizType, ok := graphvizFormats[figureType]
	if !ok {
		return errors.Errorf("unknown figure type %q", figureType)
	}

	for graphInd, currentTree := range m.Trees {
		var stats *TreeStats
		if len(m.Stats) != 0 {
			stats = &m.Stats[graphInd]
		}
		filename := fmt.Sprintf("%s_%05d.%s", dumpPrefix, graphInd, figureType)
		graphViz, graph, err := currentTree.DrawGraph(stats)
		if err != nil {
			return errors.Wrapf(err, "drawing tree %d", graphInd)
		}
		err = graphViz.RenderFilename(graph, graphvizType, path.Join(picturesDirectory, filename))
		closeGraph(graphViz, graph)
		if err != nil {
			return errors.Wrapf(err, "rendering %s", filename)
		}
		log.Infof("tree %d rendered to %s", graphInd, filename)
	}
	return nil
}

func closeGraph(graphViz *graphviz.Graphviz, graph *cgraph.Graph) {
	if err := graph.Close(); err != nil {
		log.Warnf("closing graph: %v", err)
	}
	if err := graphViz.Close(); err != nil {
		log.Warnf("closing graphviz: %v", err)
	}
}
