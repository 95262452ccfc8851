// Package config provides configuration management for the swapi server.
//
// Configuration is read from a YAML file and then overridden by environment
// variables. Every attribute remembers where its value came from:
// "default", "file" or "environment".
//
// # Configuration Sources
//
//   - $SWAPI_CONFIG_PATH/swapi.yml (default /etc/swapi/config/swapi.yml)
//   - Environment variables, which take precedence
//
// # Key Configuration Options
//
//   - DATABASE_URL: Database connection
//   - BIND_ADDRESS, PORT: Server listen address
//   - SWAPI_LOG_LEVEL: Logging verbosity
//   - SWAPI_DEBUG_ROUTES: Mount GET /users
package config
