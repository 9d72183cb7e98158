package config

import (
	"crypto/ecdsa"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyHost        = "host"
	KeyPort        = "port"
	KeyRPCURL      = "rpc_url"
	KeyPrivateKey  = "private_key"
	KeyChainID     = "chain_id"
	KeySolcVersion = "solc_version"
	KeyDebug       = "debug"
	KeyLogLevel    = "log_level"
)

// DefaultPrivateKey is the first development account of anvil and hardhat.
const DefaultPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

type Config struct {
	Host        string `mapstructure:"host" validate:"required"`
	Port        int    `mapstructure:"port" validate:"min=1,max=65535"`
	RPCURL      string `mapstructure:"rpc_url" validate:"required,url"`
	PrivateKey  string `mapstructure:"private_key" validate:"required"`
	ChainID     int64  `mapstructure:"chain_id" validate:"min=0"` // 0 asks the node
	SolcVersion string `mapstructure:"solc_version" validate:"required,semver"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"` // ignored when Debug is set
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyHost, "0.0.0.0")
	v.SetDefault(KeyPort, 3000)
	v.SetDefault(KeyRPCURL, "http://localhost:8545")
	v.SetDefault(KeyPrivateKey, DefaultPrivateKey)
	v.SetDefault(KeyChainID, 0)
	v.SetDefault(KeySolcVersion, "0.8.24")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogLevel, "info")
}

// BindFlags registers the command line flags and binds them to v. Flags take
// precedence over environment variables, which take precedence over defaults.
func BindFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	flags.String(KeyHost, "0.0.0.0", "interface to listen on")
	flags.IntP(KeyPort, "p", 3000, "port to listen on")
	flags.String("rpc-url", "http://localhost:8545", "JSON-RPC endpoint of the chain node")
	flags.String("private-key", "", "hex private key of the signing account")
	flags.Int64("chain-id", 0, "chain id used for signing (0 asks the node)")
	flags.String("solc-version", "0.8.24", "solidity compiler version")
	flags.Bool(KeyDebug, false, "development logging")
	flags.String("log-level", "info", "minimum level of production logs (debug, info, warn, error)")

	bindings := map[string]string{
		KeyHost:        KeyHost,
		KeyPort:        KeyPort,
		KeyRPCURL:      "rpc-url",
		KeyPrivateKey:  "private-key",
		KeyChainID:     "chain-id",
		KeySolcVersion: "solc-version",
		KeyDebug:       KeyDebug,
		KeyLogLevel:    "log-level",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the configuration from v (flags, environment, defaults) and
// validates it.
func Load(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	// An empty flag value must not shadow the default key.
	if cfg.PrivateKey == "" {
		cfg.PrivateKey = DefaultPrivateKey
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Key(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) Key() (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}
