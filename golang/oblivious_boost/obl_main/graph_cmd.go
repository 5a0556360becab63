package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tarstars/oblivious_split_boosting/golang/oblivious_boost/obl"
)

func newGraphCommand(v *viper.Viper, cfg func() Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render every tree of a model with graphviz",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := cfg()
			if err := requireSet("filename_model", config.FileNameModel); err != nil {
				return err
			}
			model, err := obl.LoadModel(config.FileNameModel)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(config.PicturesDirectory, 0o755); err != nil {
				return errors.Wrapf(err, "creating %s", config.PicturesDirectory)
			}
			return model.RenderTrees(config.DumpPrefix, config.FigureType, config.PicturesDirectory)
		},
	}
	flags := cmd.Flags()
	flags.String("prefix", "tree", "picture file name prefix")
	flags.String("figure-type", "svg", "png, svg, jpg or dot")
	flags.String("dir", ".", "pictures directory")
	_ = v.BindPFlag("dump_prefix", flags.Lookup("prefix"))
	_ = v.BindPFlag("figure_type", flags.Lookup("figure-type"))
	_ = v.BindPFlag("pictures_directory", flags.Lookup("dir"))
	return cmd
}
