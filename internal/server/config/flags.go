package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/catsocial/internal/flagx"
)

var serverFlags = []string{"-a", "-m", "-d", "-s", "-l", "-x", "-u", "-p", "-b", "-g", "-e", "-t", "-v"}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   metrics bind address (e.g., ":9100")
//	-d string   PostgreSQL DSN
//	-s string   cursor HMAC secret
//	-l int      default page size
//	-x int      maximum page size
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-t int      image URL validity, minutes
//	-v string   log level
//
// os.Args is filtered to the flags above with flagx.FilterArgs first, so
// flags meant for other components are ignored.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.EndpointAddrMetrics, "m", config.EndpointAddrMetrics, "address and port to serve metrics")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.CursorSecret, "s", config.CursorSecret, "cursor secret key")
	fs.IntVar(&config.DefaultPageSize, "l", config.DefaultPageSize, "default page size")
	fs.IntVar(&config.MaxPageSize, "x", config.MaxPageSize, "maximum page size")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	urlValidity := fs.Int("t", int(config.ImageURLValidity.Minutes()), "image URL validity (in minutes)")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only overrides when given, so sub-minute JSON values survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.ImageURLValidity = time.Duration(*urlValidity) * time.Minute
		}
	})
}
