// Package client implements the HTTP client for the remote
// proofreading service: text submission, interactive status
// persistence, usage statistics, API-key validation, and app
// registration. The correction-state engine never touches the wire;
// this package is the only asynchronous boundary.
package client
