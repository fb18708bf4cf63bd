// Package config defines the format-agnostic service model for the
// application, along with the Loader interface for reading a service
// definition from disk and the eagerly resolved plugin Settings.
//
// The `config.Service` is the single source of truth for the `selector` and
// `augment` packages. Concrete loaders, for YAML/JSON and for HCL, are
// provided in separate packages.
package config
