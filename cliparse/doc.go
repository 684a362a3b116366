/*
Package cliparse handles configuration from CLI flags and environment.

Precedence: CLI flags, then environment variables (a .env file in the
working directory is loaded first via godotenv), then defaults.

	-p / PORT            server port (default 5000)
	-d / DATABASE_URL    database connection string
	-t / DATABASE_TYPE   sqlite or postgres (default sqlite)

A postgres configuration requires an explicit database URL; sqlite falls
back to file:tableside.db in the working directory.
*/
package cliparse
