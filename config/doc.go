// Package config defines RunConfig, the immutable parameter set of one
// diffspec run, together with its validation and YAML loading.
//
// A RunConfig is validated once, before any I/O streaming starts. The
// pipeline consumes the validated copy and never re-parses it.
package config
