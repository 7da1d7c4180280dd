// Package configuration provides access to the global Capstream configuration
// file and its environment-based overrides.
package configuration
