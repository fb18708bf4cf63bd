// Package registry provides the central "glue" for the module system.
//
// A Registry is what a module sees when it registers: the loaded service,
// the paths of the current packaging pass and the lifecycle hook registry
// it attaches its Go functions to. Validate checks that the pass is
// runnable before any hook fires.
package registry
