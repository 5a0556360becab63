package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarstars/oblivious_split_boosting/golang/oblivious_boost/obl"
	"gonum.org/v1/gonum/mat"
)

func createTestModel() obl.Model {
	var tree obl.SplitTree
	tree.AddSplit(obl.NewSplit(obl.NewFloatSplitCandidate(0), 2))
	tree.AddSplit(obl.NewSplit(obl.NewOneHotSplitCandidate(1), 4))
	return obl.Model{Trees: []obl.SplitTree{tree, {}}}
}

func writeTestModel(t *testing.T, dir string) string {
	fileName := filepath.Join(dir, "model.obl")
	require.NoError(t, createTestModel().Save(fileName))
	return fileName
}

func writeTestNpy(t *testing.T, fileName string, m *mat.Dense) {
	dst, err := os.Create(fileName)
	require.NoError(t, err)
	defer dst.Close()
	require.NoError(t, npyio.Write(dst, m))
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func TestComputeModelStats(t *testing.T) {
	model := createTestModel()
	leafIndices := mat.NewDense(3, 2, []float64{
		0, 0,
		3, 0,
		3, 0,
	})
	weights := mat.NewDense(3, 1, []float64{0.5, 1, 2})

	require.NoError(t, computeModelStats(&model, leafIndices, weights))
	require.Len(t, model.Stats, 2)
	assert.Equal(t, []float64{0.5, 0, 0, 3}, model.Stats[0].LeafWeightsSum)
	assert.Equal(t, []float64{3.5}, model.Stats[1].LeafWeightsSum)

	require.NoError(t, computeModelStats(&model, leafIndices, nil))
	assert.Equal(t, []float64{1, 0, 0, 2}, model.Stats[0].LeafWeightsSum)
}

func TestComputeModelStatsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name        string
		leafIndices *mat.Dense
		weights     *mat.Dense
	}{
		{"column count", mat.NewDense(1, 1, []float64{0}), nil},
		{"leaf out of range", mat.NewDense(1, 2, []float64{4, 0}), nil},
		{"negative leaf", mat.NewDense(1, 2, []float64{-1, 0}), nil},
		{"fractional leaf", mat.NewDense(1, 2, []float64{1.5, 0}), nil},
		{"weights shape", mat.NewDense(1, 2, []float64{0, 0}), mat.NewDense(2, 1, []float64{1, 1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := createTestModel()
			assert.Error(t, computeModelStats(&model, tt.leafIndices, tt.weights))
		})
	}
}

func TestDumpCommand(t *testing.T) {
	dir := t.TempDir()
	modelFile := writeTestModel(t, dir)
	jsonFile := filepath.Join(dir, "model.json")

	require.NoError(t, runCommand(t, "dump", "--model", modelFile, "--json", jsonFile))

	content, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	var dumped map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &dumped))
	assert.Len(t, dumped["trees"], 2)
}

func TestDumpCommandNeedsOutput(t *testing.T) {
	dir := t.TempDir()
	modelFile := writeTestModel(t, dir)
	assert.ErrorContains(t, runCommand(t, "dump", "--model", modelFile), "filename_json")
}

func TestStatsCommandFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	modelFile := writeTestModel(t, dir)
	leafFile := filepath.Join(dir, "leaves.npy")
	writeTestNpy(t, leafFile, mat.NewDense(2, 2, []float64{1, 0, 2, 0}))
	outputFile := filepath.Join(dir, "with_stats.obl")

	config := map[string]string{
		"filename_model":        modelFile,
		"filename_leaf_indices": leafFile,
		"filename_output_model": outputFile,
		"stats_prefix":          filepath.Join(dir, "stats"),
	}
	configContent, err := json.Marshal(config)
	require.NoError(t, err)
	configFile := filepath.Join(dir, "stats.json")
	require.NoError(t, os.WriteFile(configFile, configContent, 0o644))

	require.NoError(t, runCommand(t, "stats", "--config", configFile))

	model, err := obl.LoadModel(outputFile)
	require.NoError(t, err)
	require.Len(t, model.Stats, 2)
	assert.Equal(t, []float64{0, 1, 1, 0}, model.Stats[0].LeafWeightsSum)
	assert.Equal(t, []float64{2}, model.Stats[1].LeafWeightsSum)

	saved, err := obl.LoadTreeStatsNpy(filepath.Join(dir, "stats_00000.npy"))
	require.NoError(t, err)
	assert.True(t, saved.Equal(model.Stats[0]))
}

func TestDescribeCommand(t *testing.T) {
	dir := t.TempDir()
	modelFile := writeTestModel(t, dir)
	assert.NoError(t, runCommand(t, "describe", "--model", modelFile, "--log-level", "debug"))
	assert.Error(t, runCommand(t, "describe", "--model", filepath.Join(dir, "missing.obl")))
	assert.Error(t, runCommand(t, "describe", "--model", modelFile, "--log-level", "loud"))
}
