package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/catsocial/internal/flagx"
	"github.com/dmitrijs2005/catsocial/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration,
// which accepts both strings such as "15m" and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC    string         `json:"endpoint_addr_grpc"`
	EndpointAddrMetrics string         `json:"endpoint_addr_metrics"`
	DatabaseDSN         string         `json:"database_dsn"`
	CursorSecret        string         `json:"cursor_secret"`
	DefaultPageSize     int            `json:"default_page_size"`
	MaxPageSize         int            `json:"max_page_size"`
	S3RootUser          string         `json:"s3_root_user"`
	S3RootPassword      string         `json:"s3_root_password"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
	ImageURLValidity    timex.Duration `json:"image_url_validity"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays the JSON file named by -c/-config, if any, onto config.
// Keys absent from the file keep their current values. An unreadable file
// or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrMetrics, c.EndpointAddrMetrics)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.CursorSecret, c.CursorSecret)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.DefaultPageSize > 0 {
		config.DefaultPageSize = c.DefaultPageSize
	}
	if c.MaxPageSize > 0 {
		config.MaxPageSize = c.MaxPageSize
	}
	if c.ImageURLValidity.Duration > 0 {
		config.ImageURLValidity = time.Duration(c.ImageURLValidity.Duration)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
