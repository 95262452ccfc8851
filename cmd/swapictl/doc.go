// Command swapictl runs the SWAPI server, a REST API over the Star Wars
// collections (people, species, planets, films, starships, vehicles) plus
// user accounts with HTTP Basic authentication.
//
// # Quick Start
//
//	# Create or upgrade the schema
//	swapictl db migrate
//
//	# Create an account; the password is printed unless SWAPI_USER_PASSWORD is set
//	swapictl user create leia --first-name Leia --last-name Organa
//
//	# Start the server
//	swapictl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - SWAPI_CONFIG_PATH: directory holding swapi.yml (default /etc/swapi/config)
//   - SWAPI_LOG_LEVEL: log level (debug, info, warn, error)
//   - SWAPI_DEBUG_ROUTES: mount GET /users, which lists every account
//   - SWAPI_AUDIT_ENABLED: set to false to silence audit messages
//   - AUDIT_DATABASE_URL: optional database for persisted audit messages
//   - PORT: server port (default 8080)
package main
