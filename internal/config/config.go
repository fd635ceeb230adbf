package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/internal/postgres"
	"github.com/gaze-network/artifact-registry/pkg/logger"
	"github.com/gaze-network/artifact-registry/pkg/logger/slogx"
	"github.com/gaze-network/artifact-registry/pkg/middleware/requestcontext"
	"github.com/gaze-network/artifact-registry/pkg/middleware/requestlogger"
	"github.com/gaze-network/artifact-registry/pkg/reportingclient"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configOnce sync.Once
	config     = &Config{
		Logger: logger.Config{
			Output: "text",
		},
		HTTPServer: HTTPServer{
			Port: 8080,
		},
		Database: "postgres",
		Reporting: reportingclient.Config{
			Disabled: true,
		},
		Registry: Registry{
			Name:          "Artifact Registry",
			Symbol:        "ARTI",
			BlockInterval: 12 * time.Second,
		},
	}
)

type Config struct {
	Logger     logger.Config          `mapstructure:"logger"`
	HTTPServer HTTPServer             `mapstructure:"http_server"`
	Registry   Registry               `mapstructure:"registry"`
	Database   string                 `mapstructure:"database"` // "postgres" | "memory"
	Postgres   postgres.Config        `mapstructure:"postgres"`
	Reporting  reportingclient.Config `mapstructure:"reporting"`
}

type HTTPServer struct {
	Port      int                               `mapstructure:"port"`
	Logger    requestlogger.Config              `mapstructure:"logger"`
	RequestIP requestcontext.WithClientIPConfig `mapstructure:"request_ip"`
}

type Registry struct {
	Name       string `mapstructure:"name"`
	Symbol     string `mapstructure:"symbol"`
	BaseURI    string `mapstructure:"base_uri"`
	Controller string `mapstructure:"controller"`

	// MintPrice is the fixed mint price in base payment units, as a decimal
	// string. Empty uses the built-in default.
	MintPrice string `mapstructure:"mint_price"`

	// Genesis is the unix timestamp of logical block height zero and
	// BlockInterval the duration of one logical block.
	Genesis       int64         `mapstructure:"genesis"`
	BlockInterval time.Duration `mapstructure:"block_interval"`
}

// BindPFlag binds a specific flag to a config key. Bound flags override values
// from the config file and environment.
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Failed to bind flag to config", slogx.String("key", key), slogx.Error(err))
	}
}

// Parse reads the configuration from the given file (or ./config.yaml when
// empty), environment variables, and bound flags. Subsequent calls return the
// first result.
func Parse(configFile string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))
	configOnce.Do(func() {
		if configFile != "" {
			viper.SetConfigFile(configFile)
		} else {
			viper.AddConfigPath("./")
			viper.SetConfigName("config")
		}

		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		if err := viper.ReadInConfig(); err != nil {
			var errNotfound viper.ConfigFileNotFoundError
			if errors.As(err, &errNotfound) {
				logger.WarnContext(ctx, "config file not found, use default value", slogx.Error(err))
			} else {
				logger.PanicContext(ctx, "invalid config file", slogx.Error(err))
			}
		}

		if err := viper.Unmarshal(&config); err != nil {
			logger.PanicContext(ctx, "failed to unmarshal config", slogx.Error(err))
		}
		logger.DebugContext(ctx, "loaded config successfully")
	})

	return *config
}

// Load returns the parsed configuration.
func Load() Config {
	return Parse("")
}
