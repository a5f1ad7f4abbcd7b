package cmd

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "interviu"
	envPrefix = "INTERVIU"
)

type Config struct {
	AI        *AIConfig        `mapstructure:"ai"`
	Interview *InterviewConfig `mapstructure:"interview"`
	Store     *StoreConfig     `mapstructure:"store"`
	Metrics   *MetricsConfig   `mapstructure:"metrics"`
}

type AIConfig struct {
	Provider     string           `mapstructure:"provider"`
	Timeout      time.Duration    `mapstructure:"timeout"`
	MaxLogLength int              `mapstructure:"max-log-length"`
	Gemini       *GeminiConfig    `mapstructure:"gemini"`
	OpenAI       *OpenAIConfig    `mapstructure:"openai"`
	Anthropic    *AnthropicConfig `mapstructure:"anthropic"`
	Ollama       *OllamaConfig    `mapstructure:"ollama"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxTokens  int    `mapstructure:"max-tokens"`
	BaseURL    string `mapstructure:"base-url"`
}

type AnthropicConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxTokens  int    `mapstructure:"max-tokens"`
}

type OllamaConfig struct {
	Host  string `mapstructure:"host"`
	Model string `mapstructure:"model"`
}

type InterviewConfig struct {
	Voice           string `mapstructure:"voice"`
	TargetQuestions int    `mapstructure:"target-questions"`
	MaxExchanges    int    `mapstructure:"max-exchanges"`
	QuestionsFile   string `mapstructure:"questions-file"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interviu is a terminal mock interviewer that asks, scores and reports",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interviu.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("owner", defaultOwner(), "candidate identifier owning the interviews")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("owner", rootCmd.PersistentFlags().Lookup("owner"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.timeout", 30*time.Second)
	viper.SetDefault("ai.max-log-length", 200)
	viper.SetDefault("ai.gemini.api-key", "")
	viper.SetDefault("ai.gemini.api-key-file", "")
	viper.SetDefault("ai.gemini.model", "")
	viper.SetDefault("ai.openai.api-key", "")
	viper.SetDefault("ai.openai.api-key-file", "")
	viper.SetDefault("ai.openai.model", "")
	viper.SetDefault("ai.openai.max-tokens", 0)
	viper.SetDefault("ai.openai.base-url", "")
	viper.SetDefault("ai.anthropic.api-key", "")
	viper.SetDefault("ai.anthropic.api-key-file", "")
	viper.SetDefault("ai.anthropic.model", "")
	viper.SetDefault("ai.anthropic.max-tokens", 0)
	viper.SetDefault("ai.ollama.host", "")
	viper.SetDefault("ai.ollama.model", "")
	viper.SetDefault("interview.voice", "professional")
	viper.SetDefault("interview.target-questions", 10)
	viper.SetDefault("interview.max-exchanges", 10)
	viper.SetDefault("interview.questions-file", "")
	viper.SetDefault("store.driver", "sqlite")
	viper.SetDefault("store.path", app+".db")
	viper.SetDefault("metrics.listen", "")
}

func initConfig() {
	// .env is optional; variables already present in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

func defaultOwner() string {
	if user := strings.TrimSpace(os.Getenv("USER")); user != "" {
		return user
	}
	return "local"
}
