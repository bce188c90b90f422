package hashicorp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// Client wraps the HashiCorp Vault API client
type Client struct {
	client *vault.Client
}

// NewClient creates a new HashiCorp Vault client for address, authenticated with token.
// TLS settings still come from the standard VAULT_CACERT / VAULT_SKIP_VERIFY variables.
func NewClient(address, token, namespace string, timeout time.Duration) (*Client, error) {
	// Create default config (reads VAULT_CACERT, VAULT_CLIENT_CERT, etc.)
	config := vault.DefaultConfig()
	if config.Error != nil {
		return nil, fmt.Errorf("failed to read Vault client configuration: %w", config.Error)
	}

	if address == "" {
		return nil, fmt.Errorf("vault address is required")
	}
	config.Address = address
	if timeout > 0 {
		config.Timeout = timeout
	}

	client, err := vault.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	client.SetToken(token)

	// Set namespace if provided (required for Vault Enterprise)
	if namespace != "" {
		client.SetNamespace(namespace)
	}

	return &Client{
		client: client,
	}, nil
}

// ListMounts returns all secret engine mounts
func (c *Client) ListMounts(ctx context.Context) (map[string]*vault.MountOutput, error) {
	mounts, err := c.client.Sys().ListMountsWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mounts: %w", err)
	}
	return mounts, nil
}

// Health checks the health of the Vault server
func (c *Client) Health(ctx context.Context) error {
	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}

	if !health.Initialized {
		return fmt.Errorf("vault is not initialized")
	}

	if health.Sealed {
		return fmt.Errorf("vault is sealed")
	}

	return nil
}

// LookupSelf verifies that the client token is accepted
func (c *Client) LookupSelf(ctx context.Context) error {
	if _, err := c.client.Auth().Token().LookupSelfWithContext(ctx); err != nil {
		return fmt.Errorf("token lookup failed: %w", err)
	}
	return nil
}

// PatchSecret merges data into a KV v2 secret. It returns vault.ErrSecretNotFound
// (wrapped) when the secret does not exist yet.
func (c *Client) PatchSecret(ctx context.Context, mountPath, secretPath string, data map[string]interface{}) error {
	_, err := c.client.KVv2(strings.Trim(mountPath, "/")).Patch(ctx, secretPath, data)
	if err != nil {
		return fmt.Errorf("failed to patch secret: %w", err)
	}
	return nil
}

// PutSecret writes data as a new version of a KV v2 secret
func (c *Client) PutSecret(ctx context.Context, mountPath, secretPath string, data map[string]interface{}) error {
	_, err := c.client.KVv2(strings.Trim(mountPath, "/")).Put(ctx, secretPath, data)
	if err != nil {
		return fmt.Errorf("failed to write secret: %w", err)
	}
	return nil
}

// isNotFound reports whether err means the KV v2 secret has no data yet
func isNotFound(err error) bool {
	if errors.Is(err, vault.ErrSecretNotFound) {
		return true
	}
	var respErr *vault.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
