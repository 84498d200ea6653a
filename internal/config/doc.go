// Package config provides the configuration of ffscope: defaults, the
// .ffscope YAML file, environment overrides and validation.
package config
