package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/community"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/config"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
)

var log = commonlog.GetLogger("clubsite")

var (
	cfgFile   string
	verbosity int
	logFile   string
	appConfig config.Config
	siteData  *model.SiteData
)

var rootCmd = &cobra.Command{
	Use:   "clubsite",
	Short: "clubsite - the AI club website",
	Long: `clubsite serves the AI club website: markdown pages from './content/',
CSV resources (members, events, leaderboard, community posts) from './static/',
and a community feed whose new posts are kept locally until an administrator
exports and republishes them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogging()
		return initializeConfig(cmd)
	},
}

// Execute runs the root command with the site metadata loaded by main.
func Execute(site *model.SiteData) {
	siteData = site
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log to this file instead of stderr")
}

func configureLogging() {
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbosity+1, path)
}

func initializeConfig(_ *cobra.Command) error {
	v := viper.New()

	v.SetDefault("outputDir", "public")
	v.SetDefault("baseURL", "")
	v.SetDefault("resourceBaseURL", "")
	v.SetDefault("siteTitle", "AI Club")
	v.SetDefault("contentDir", "content")
	v.SetDefault("staticDir", "static")
	v.SetDefault("overlayPath", "")
	v.SetDefault("pollInterval", community.DefaultPollInterval)
	v.SetDefault("port", config.DefaultPort)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CLUBSITE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
			log.Notice("no config file found, using defaults and environment")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Infof("using config file %s", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if siteData == nil {
		siteData = &model.SiteData{}
	}
	return nil
}
