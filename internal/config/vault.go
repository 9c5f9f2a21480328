package config

import (
	"fmt"
	"os"
	"strings"

	"resumelens/internal/errors"

	"github.com/hashicorp/vault/api"
)

// VaultConfig holds Vault connection settings. The only secret this
// service pulls from Vault is the server API key list, fetched once at
// serve startup.
type VaultConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"tokenFile"`
	Namespace string `mapstructure:"namespace"`

	Secrets VaultSecrets `mapstructure:"secrets"`
}

// VaultSecrets names the KVv2 paths the service reads.
type VaultSecrets struct {
	// APIKeys points at a secret whose "keys" field is a comma-separated
	// list of accepted API keys.
	APIKeys string `mapstructure:"apiKeys"`
}

// VaultClient wraps the Vault API client with this service's read paths.
type VaultClient struct {
	client *api.Client
	logger *errors.Logger
}

// NewVaultClient connects and authenticates against Vault. Returns
// (nil, nil) when Vault is disabled so callers can skip it without a
// sentinel error.
func NewVaultClient(config VaultConfig, logger *errors.Logger) (*VaultClient, error) {
	if !config.Enabled {
		if logger != nil {
			logger.Debug("Vault integration disabled")
		}
		return nil, nil
	}

	apiConfig := api.DefaultConfig()
	if config.Address != "" {
		apiConfig.Address = config.Address
	}
	client, err := api.NewClient(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	if config.Namespace != "" {
		client.SetNamespace(config.Namespace)
	}

	token, err := resolveVaultToken(config, logger)
	if err != nil {
		return nil, err
	}
	client.SetToken(token)

	health, err := client.Sys().Health()
	if err != nil {
		if logger != nil {
			logger.LogError(err, "Failed to connect to Vault", "address", config.Address)
		}
		return nil, fmt.Errorf("failed to connect to vault: %w", err)
	}
	if logger != nil {
		logger.Info("Connected to Vault",
			"address", config.Address,
			"version", health.Version,
			"sealed", health.Sealed)
	}

	return &VaultClient{client: client, logger: logger}, nil
}

// resolveVaultToken prefers an inline token and falls back to the token
// file, which is how Vault agent sidecars deliver credentials.
func resolveVaultToken(config VaultConfig, logger *errors.Logger) (string, error) {
	token := config.Token
	if token == "" && config.TokenFile != "" {
		raw, err := os.ReadFile(config.TokenFile)
		if err != nil {
			if logger != nil {
				logger.LogError(err, "Failed to read Vault token file", "file", config.TokenFile)
			}
			return "", fmt.Errorf("failed to read vault token file: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}
	if token == "" {
		return "", fmt.Errorf("vault token is required when vault is enabled")
	}
	return token, nil
}

// readKVv2 reads a KVv2 secret and unwraps its nested data payload.
func (vc *VaultClient) readKVv2(path string) (map[string]any, error) {
	if vc == nil {
		return nil, fmt.Errorf("vault client not initialized")
	}

	secret, err := vc.client.Logical().Read(path)
	if err != nil {
		if vc.logger != nil {
			vc.logger.LogError(err, "Failed to read secret from Vault", "path", path)
		}
		return nil, fmt.Errorf("failed to read secret from %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("secret not found at path: %s", path)
	}

	data, ok := secret.Data["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'data' field)", path)
	}
	return data, nil
}

// GetStringSliceSecret reads a comma-separated string field and splits
// it into trimmed entries.
func (vc *VaultClient) GetStringSliceSecret(path, key string) ([]string, error) {
	data, err := vc.readKVv2(path)
	if err != nil {
		return nil, err
	}

	value, ok := data[key]
	if !ok {
		return nil, fmt.Errorf("key '%s' not found in secret %s", key, path)
	}
	joined, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("value for key '%s' is not a string in secret %s", key, path)
	}
	if joined == "" {
		return []string{}, nil
	}

	parts := strings.Split(joined, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts, nil
}

// ApplyVaultSecrets overlays Vault-held secrets onto the loaded config.
// Called once during serve startup, after file and env config are in
// place, so Vault wins over both.
func ApplyVaultSecrets(config *Config, logger *errors.Logger) error {
	if !config.Vault.Enabled {
		return nil
	}

	client, err := NewVaultClient(config.Vault, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize vault client: %w", err)
	}
	if client == nil {
		return nil
	}

	return loadAPIKeysFromVault(client, config, logger)
}

func loadAPIKeysFromVault(client *VaultClient, config *Config, logger *errors.Logger) error {
	path := config.Vault.Secrets.APIKeys
	if path == "" {
		return nil
	}

	apiKeys, err := client.GetStringSliceSecret(path, "keys")
	if err != nil {
		return fmt.Errorf("failed to load API keys from vault: %w", err)
	}

	if len(apiKeys) == 0 {
		if logger != nil {
			logger.Warn("No API keys found in Vault", "path", path)
		}
		return nil
	}

	config.Server.APIKeys = apiKeys
	if logger != nil {
		logger.Info("API keys loaded from Vault", "count", len(apiKeys))
	}
	return nil
}
