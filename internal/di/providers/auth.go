package providers

import (
	"github.com/samber/do/v2"

	"github.com/reelhouse/reelhouse-server/internal/auth"
	"github.com/reelhouse/reelhouse-server/internal/config"
	"github.com/reelhouse/reelhouse-server/internal/logger"
)

// AuthKey wraps the authentication key bytes.
type AuthKey []byte

// ProvideAuthKey resolves the token key. A key set in the configuration
// takes precedence over the key file under the data path.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	source := "config"
	var (
		key []byte
		err error
	)
	if cfg.Auth.AccessTokenKeyHex != "" {
		key, err = auth.DecodeKey(cfg.Auth.AccessTokenKeyHex)
	} else {
		source = "key file"
		key, err = auth.LoadOrGenerateKey(cfg.Data.BasePath)
	}
	if err != nil {
		return nil, err
	}

	// Update config with the resolved key
	cfg.Auth.AccessTokenKey = key

	log.Info("Authentication key loaded",
		"source", source,
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(cfg.Auth.AccessTokenKey), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(authKey), cfg.Auth.AccessTokenDuration)
}
