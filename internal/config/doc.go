// Package config defines the format-agnostic settings model for the
// application, along with the Loader interface for reading settings from
// files.
//
// Concrete loaders live in separate packages: internal/hcl for HCL and
// internal/yamlcfg for YAML.
package config
