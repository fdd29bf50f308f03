package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g. ":3000")
//	-g string     gRPC bind address (e.g. ":50051")
//	-d string     PostgreSQL DSN
//	-s string     JWT HMAC secret key
//	-t duration   token validity (e.g. "24h")
//	-b int        bcrypt cost
//	-o duration   credential store call timeout (e.g. "3s")
//	-origins str  comma-separated CORS origins
//	-l string     log level
//
// os.Args is filtered first so -c/-config and foreign flags are ignored here.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-b", "-o", "-origins", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "token validity duration")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.DurationVar(&config.StoreTimeout, "o", config.StoreTimeout, "store call timeout")
	origins := fs.String("origins", strings.Join(config.CORSAllowedOrigins, ","), "comma-separated CORS origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.CORSAllowedOrigins = splitList(*origins)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
