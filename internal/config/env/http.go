package env

import (
	"net"
	"os"
	"reward_wheel/internal/config"
	"strings"
)

const (
	httpHostEnvName  = "HTTP_HOST"
	httpPortEnvName  = "HTTP_PORT"
	publicURLEnvName = "PUBLIC_URL"
)

type httpConfig struct {
	host      string
	port      string
	publicURL string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	host := os.Getenv(httpHostEnvName)
	if len(host) == 0 {
		host = "0.0.0.0"
	}

	port := os.Getenv(httpPortEnvName)
	if len(port) == 0 {
		port = "5001"
	}

	publicURL := strings.TrimRight(os.Getenv(publicURLEnvName), "/")
	if len(publicURL) == 0 {
		publicURL = "http://localhost:" + port
	}

	return &httpConfig{
		host:      host,
		port:      port,
		publicURL: publicURL,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}

func (cfg *httpConfig) PublicURL() string {
	return cfg.publicURL
}
