// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package config loads Ojakgyo configuration with koanf.

Sources are layered, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, else config.yaml, config.yml, /etc/ojakgyo/config.yaml
 3. Environment variables, after an optional .env file (DOTENV_PATH, default .env)
    has been exported with godotenv

Only environment variables listed in the mapping table are read, for example:

	HTTP_PORT                    server.port
	DB_DRIVER                    database.driver (duckdb | postgres)
	DUCKDB_PATH                  database.path
	POSTGRES_DSN                 database.postgres_dsn
	RECOMMENDATION_LIMIT         recommend.limit
	RECOMMEND_STRATEGY           recommend.strategy (evaluation | weighted)
	WEATHER_RAINFALL_THRESHOLD   weather.rainfall_mm
	UV_INDEX_THRESHOLD           weather.uv_index

Example config.yaml:

	server:
	  port: 8080
	database:
	  driver: duckdb
	  path: /data/ojakgyo.duckdb
	  import_dir: /data/csv
	recommend:
	  limit: 10
	  strategy: evaluation
	  thresholds:
	    restaurant_district: 19
	    restaurant_district_relaxed: 15
*/
package config
