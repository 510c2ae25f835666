// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Variables may also come from an optional .env file loaded before the YAML is read.
// Every field is optional; missing values take the Default* constants.
package config
