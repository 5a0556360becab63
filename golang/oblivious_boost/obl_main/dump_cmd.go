package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tarstars/oblivious_split_boosting/golang/oblivious_boost/obl"
)

func newDumpCommand(v *viper.Viper, cfg func() Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Convert a model file to indented json",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := cfg()
			for name, value := range map[string]string{
				"filename_model": config.FileNameModel,
				"filename_json":  config.FileNameJSON,
			} {
				if err := requireSet(name, value); err != nil {
					return err
				}
			}
			model, err := obl.LoadModel(config.FileNameModel)
			if err != nil {
				return err
			}
			if err := model.DumpJSON(config.FileNameJSON); err != nil {
				return err
			}
			log.Infof("%d trees dumped to %s", len(model.Trees), config.FileNameJSON)
			return nil
		},
	}
	cmd.Flags().String("json", "", "output json file")
	_ = v.BindPFlag("filename_json", cmd.Flags().Lookup("json"))
	return cmd
}
