package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logrus.WithField("pkg", "obl_main")

func newRootCommand() *cobra.Command {
	v := viper.New()
	var configFile string
	var config Config

	root := &cobra.Command{
		Use:           "obl_main",
		Short:         "Inspect oblivious split trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			config, err = loadConfig(v, configFile)
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "json or yaml config file")
	flags.String("log-level", "info", "logrus level")
	flags.String("model", "", "model file")
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("filename_model", flags.Lookup("model"))

	cfg := func() Config { return config }
	root.AddCommand(
		newDescribeCommand(cfg),
		newDumpCommand(v, cfg),
		newGraphCommand(v, cfg),
		newStatsCommand(v, cfg),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
