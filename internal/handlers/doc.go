// Package handlers is the lifecycle hook registry. Modules attach Go
// functions to named packaging events; the app fires the events in order.
package handlers
