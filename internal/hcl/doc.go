// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for parsing serverless.hcl files, evaluating
// expressions against a small function library and translating the decoded
// schema into the format-agnostic service model.
package hcl
