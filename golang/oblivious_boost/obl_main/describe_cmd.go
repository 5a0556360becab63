package main

import (
	"github.com/spf13/cobra"
	"github.com/tarstars/oblivious_split_boosting/golang/oblivious_boost/obl"
)

func describeModel(model obl.Model) {
	log.Infof("model has %d trees", len(model.Trees))
	for treeInd, tree := range model.Trees {
		treeLog := log.WithField("tree", treeInd)
		treeLog.Infof("depth %d, %d leaves", tree.GetDepth(), tree.GetLeafCount())
		treeLog.Infof("%d float splits, %d one-hot splits, %d ctr splits",
			len(tree.GetBinFeatures()), len(tree.GetOneHotFeatures()), len(tree.GetCtrSplits()))
		for level, split := range tree.Splits {
			treeLog.Debugf("level %d: %s > %d, hash %016x", level, split.SplitCandidate, split.BinBorder, split.GetHash())
		}
		if len(model.Stats) != 0 {
			treeLog.Infof("total weight %g", model.Stats[treeInd].TotalWeight())
		}
	}
}

func newDescribeCommand(cfg func() Config) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Log the structure of every tree of a model",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := cfg()
			if err := requireSet("filename_model", config.FileNameModel); err != nil {
				return err
			}
			model, err := obl.LoadModel(config.FileNameModel)
			if err != nil {
				return err
			}
			describeModel(model)
			return nil
		},
	}
}
