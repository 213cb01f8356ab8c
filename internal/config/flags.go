package config

import (
	"errors"
	"flag"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// GatewayAddress holds the API gateway location given on the command line.
// It implements the flag.Value interface and accepts either "host:port" or an
// absolute http(s) URL.
type GatewayAddress struct {
	Scheme string
	Host   string
	Port   int
}

// ParseFlags parses all configuration flags from [flag.CommandLine].
//
// Flags:
//
//	-a gateway address, host:port or http(s)://host:port
//	-t request timeout (e.g., "15s")
//	-d database DSN
//	-p profile directory
//	-s profile secret
//	-r refresh interval (e.g., "30s")
//	-page-size rows per page
//	-low-stock low stock threshold
//	-log-level zerolog level
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var gatewayAddress GatewayAddress
	var requestTimeout, refreshInterval time.Duration
	var databaseDSN, profileDir, profileSecret, logLevel string
	var pageSize, lowStock int
	var jsonConfigPath string

	flag.Var(&gatewayAddress, "a", "API gateway address host:port or URL")
	flag.DurationVar(&requestTimeout, "t", 0, "Request timeout (e.g., 15s)")
	flag.StringVar(&databaseDSN, "d", "", "Profile database DSN")
	flag.StringVar(&profileDir, "p", "", "Profile directory")
	flag.StringVar(&profileSecret, "s", "", "Profile secret")
	flag.DurationVar(&refreshInterval, "r", 0, "Refresh interval (e.g., 30s)")
	flag.IntVar(&pageSize, "page-size", 0, "Rows per page")
	flag.IntVar(&lowStock, "low-stock", 0, "Low stock threshold")
	flag.StringVar(&logLevel, "log-level", "", "Log level")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			ProfileDir:    profileDir,
			ProfileSecret: profileSecret,
			LogLevel:      logLevel,
		},
		Adapter: Adapter{
			Address:        gatewayAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Workers: Workers{RefreshInterval: refreshInterval},
		Console: Console{
			PageSize:          pageSize,
			LowStockThreshold: lowStock,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the address as a base URL, or "" when unset.
func (a *GatewayAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	scheme := a.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses "host:port" or "scheme://host:port". The host must be
// "localhost", an IP address or a DNS name; the port must be positive.
func (a *GatewayAddress) Set(s string) error {
	scheme := ""
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return err
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.New("only http and https gateways are supported")
		}
		scheme = u.Scheme
		s = u.Host
	}

	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}
	if port < 1 {
		return errors.New("port number is a positive integer")
	}
	if host == "" {
		return errors.New("empty host")
	}

	a.Scheme = scheme
	a.Host = host
	a.Port = port
	return nil
}
