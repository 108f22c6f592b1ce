package config

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DevScope = "dev"

var (
	ErrNoPrivateKey = errors.New("no JWT private key configured")
	ErrNoPublicKey  = errors.New("no JWT public key configured")
	ErrWrongScope   = errors.New("token scope does not grant access")
)

type JWTConfig struct {
	PublicKey      string   `yaml:"public_key"`
	PublicKeyFile  string   `yaml:"public_key_file"`
	PrivateKey     string   `yaml:"private_key"`
	PrivateKeyFile string   `yaml:"private_key_file"`
	TokenLifetime  Duration `yaml:"token_lifetime"`
}

func (c *JWTConfig) applyEnv() {
	lookupString("JWT_PUBLIC_KEY", &c.PublicKey)
	lookupString("JWT_PUBLIC_KEY_FILE", &c.PublicKeyFile)
	lookupString("JWT_PRIVATE_KEY", &c.PrivateKey)
	lookupString("JWT_PRIVATE_KEY_FILE", &c.PrivateKeyFile)
}

func (c JWTConfig) Configured() bool {
	return c.PublicKey != "" || c.PublicKeyFile != ""
}

// DevClaims grant access to the developer endpoints.
type DevClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func NewDevClaims(subject string, lifetime time.Duration) *DevClaims {
	now := time.Now()
	return &DevClaims{
		Scope: DevScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
}

type JWT struct {
	publicKey     *rsa.PublicKey
	privateKey    *rsa.PrivateKey
	signingMethod jwt.SigningMethod
	TokenLifetime time.Duration
}

func loadKey(inline, path string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read JWT key: %w", err)
	}
	return b, nil
}

// NewJWT loads the RS256 key pair. The public key is required; without a
// private key the result can verify tokens but not sign them.
func NewJWT(cfg JWTConfig) (*JWT, error) {
	pub, err := loadKey(cfg.PublicKey, cfg.PublicKeyFile)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		return nil, ErrNoPublicKey
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pub)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT public key: %w", err)
	}

	j := &JWT{
		publicKey:     publicKey,
		signingMethod: jwt.SigningMethodRS256,
		TokenLifetime: cfg.TokenLifetime.Duration,
	}

	priv, err := loadKey(cfg.PrivateKey, cfg.PrivateKeyFile)
	if err != nil {
		return nil, err
	}
	if priv != nil {
		j.privateKey, err = jwt.ParseRSAPrivateKeyFromPEM(priv)
		if err != nil {
			return nil, fmt.Errorf("unable to parse JWT private key: %w", err)
		}
	}

	return j, nil
}

func (j *JWT) CanSign() bool {
	return j.privateKey != nil
}

func (j *JWT) Sign(claims jwt.Claims) (string, error) {
	if j.privateKey == nil {
		return "", ErrNoPrivateKey
	}
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.privateKey)
}

func (j *JWT) ParseWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	return jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.publicKey, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
	)
}

func (j *JWT) ParseDevClaims(tokenString string) (*DevClaims, error) {
	token, err := j.ParseWithClaims(tokenString, &DevClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*DevClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	if claims.Scope != DevScope {
		return nil, ErrWrongScope
	}
	return claims, nil
}
