// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. Settings files may reference the process environment through
// the `env` object, e.g. `level = lower(env.FILEOPEN_LOG_LEVEL)`.
package hcl
