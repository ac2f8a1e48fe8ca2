// Package config loads runtime configuration for markbook.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with MARKBOOK_. Variables from a dotenv
//     file (-e or -env-file, default ".env", ignored when missing) fill in
//     names the process environment does not set.
//  4. Command-line flags.
//
// Supported flags
//
//	-b string    storage backend: fs, s3, sqlite or postgres
//	-d string    data directory for the fs and sqlite backends
//	-dsn string  database DSN for the sqlite and postgres backends
//	-l string    log level: debug, info, warn or error
//
// # JSON schema
//
//	{
//	  "storage_backend": "s3",
//	  "data_dir": "data",
//	  "database_dsn": "",
//	  "s3_bucket": "markbook",
//	  "s3_region": "eu-north-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "",
//	  "s3_secret_key": "",
//	  "s3_prefix": "",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Keys left out of the file keep their earlier value.
package config
