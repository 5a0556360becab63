package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tarstars/oblivious_split_boosting/golang/oblivious_boost/obl"
	"gonum.org/v1/gonum/mat"
)

//computeModelStats fills model.Stats from a matrix holding one row per object and one
//column of leaf indices per tree. weights is nil or a column vector.
func computeModelStats(model *obl.Model, leafIndices, weights *mat.Dense) error {
	rows, cols := leafIndices.Dims()
	if cols != len(model.Trees) {
		return errors.Errorf("%d leaf index columns for %d trees", cols, len(model.Trees))
	}
	var objectWeights []float64
	if weights != nil {
		weightRows, weightCols := weights.Dims()
		if weightRows != rows || weightCols != 1 {
			return errors.Errorf("weights have shape %dx%d, want %dx1", weightRows, weightCols, rows)
		}
		objectWeights = mat.Col(nil, 0, weights)
	}

	model.Stats = make([]obl.TreeStats, len(model.Trees))
	leaves := make([]int, rows)
	for treeInd, tree := range model.Trees {
		for row := range leaves {
			value := leafIndices.At(row, treeInd)
			if value < 0 || value >= float64(tree.GetLeafCount()) || value != float64(int(value)) {
				return errors.Errorf("object %d has leaf %g in tree %d with %d leaves", row, value, treeInd, tree.GetLeafCount())
			}
			leaves[row] = int(value)
		}
		model.Stats[treeInd] = obl.ComputeTreeStats(tree, leaves, objectWeights)
	}
	return nil
}

func newStatsCommand(v *viper.Viper, cfg func() Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Sum object weights per leaf and store them with the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := cfg()
			for name, value := range map[string]string{
				"filename_model":        config.FileNameModel,
				"filename_leaf_indices": config.FileNameLeafIndices,
			} {
				if err := requireSet(name, value); err != nil {
					return err
				}
			}

			model, err := obl.LoadModel(config.FileNameModel)
			if err != nil {
				return err
			}
			leafIndices, err := obl.ReadNpy(config.FileNameLeafIndices)
			if err != nil {
				return err
			}
			var weights *mat.Dense
			if config.FileNameWeights != "" {
				if weights, err = obl.ReadNpy(config.FileNameWeights); err != nil {
					return err
				}
			}
			if err := computeModelStats(&model, leafIndices, weights); err != nil {
				return err
			}

			if config.StatsPrefix != "" {
				for treeInd, stats := range model.Stats {
					if err := stats.SaveNpy(fmt.Sprintf("%s_%05d.npy", config.StatsPrefix, treeInd)); err != nil {
						return err
					}
				}
			}
			output := config.FileNameOutput
			if output == "" {
				output = config.FileNameModel
			}
			if err := model.Save(output); err != nil {
				return err
			}
			log.Infof("stats of %d trees saved to %s", len(model.Trees), output)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.String("leaf-indices", "", "npy matrix of leaf indices, one column per tree")
	flags.String("weights", "", "npy column of object weights")
	flags.String("output", "", "output model file, defaults to the input model")
	flags.String("stats-prefix", "", "also save per-tree leaf weights as <prefix>_NNNNN.npy")
	_ = v.BindPFlag("filename_leaf_indices", flags.Lookup("leaf-indices"))
	_ = v.BindPFlag("filename_weights", flags.Lookup("weights"))
	_ = v.BindPFlag("filename_output_model", flags.Lookup("output"))
	_ = v.BindPFlag("stats_prefix", flags.Lookup("stats-prefix"))
	return cmd
}
