// Package yaml provides the YAML implementation of the config.Loader
// interface for serverless.yml, serverless.yaml and serverless.json files.
// JSON documents are parsed as YAML.
package yaml
