// Package api holds the wire types of the grammar feedback service and a small
// HTTP client for it.
package api
