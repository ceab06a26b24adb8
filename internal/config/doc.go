// Package config provides configuration structures and utilities for the
// audit engine. It defines the fetch, concurrency, scoring, and output
// options, their defaults, and the optional .seoscan YAML file loader.
package config
