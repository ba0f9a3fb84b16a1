// Package orchestrator wires the provider → renderer → target pipeline,
// resolving theme selections and reporting key collisions before a fragment
// reaches the host document.
package orchestrator
