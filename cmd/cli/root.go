package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"musicreg/internal/gateway"
	"musicreg/pkg/utils"
)

const defaultBaseURL = "http://localhost:8080"

// cliConfig is read from ~/.config/musicreg/config.yaml and MUSICREG_* env vars.
type cliConfig struct {
	APIURL    string `mapstructure:"api_url"`
	TokenPath string `mapstructure:"token_path"`
	SyncAddr  string `mapstructure:"sync_addr"`
	DraftPath string `mapstructure:"draft_path"`
}

var (
	cfgFile string
	cfg     cliConfig
)

var rootCmd = &cobra.Command{
	Use:           "musicreg",
	Short:         "Register musical works with the registration service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/musicreg/config.yaml)")
	rootCmd.PersistentFlags().String("api", "", "API base URL")
	rootCmd.PersistentFlags().String("token", "", "token file path")

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api"))
	_ = viper.BindPFlag("token_path", rootCmd.PersistentFlags().Lookup("token"))
}

func initConfig() {
	utils.LoadEnv()

	viper.SetDefault("api_url", defaultBaseURL)
	viper.SetDefault("token_path", defaultTokenPath())
	viper.SetDefault("sync_addr", "127.0.0.1:7070")
	viper.SetDefault("draft_path", "")

	viper.SetEnvPrefix("MUSICREG")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "musicreg"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	// a missing config file just means defaults
	_ = viper.ReadInConfig()

	_ = viper.Unmarshal(&cfg)
}

func newClient() *gateway.Client {
	token, _ := readToken(cfg.TokenPath)
	return gateway.New(cfg.APIURL, token)
}

// authedClient fails early when no token was saved by "auth login".
func authedClient() (*gateway.Client, error) {
	token, err := mustToken(cfg.TokenPath)
	if err != nil {
		return nil, err
	}
	return gateway.New(cfg.APIURL, token), nil
}
