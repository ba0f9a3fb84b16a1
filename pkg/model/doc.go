// Package model defines the fish record consumed by renderers and the helpers
// that derive element identifiers from it. Records are plain values owned by
// the data provider; renderers receive a Collection snapshot and never mutate
// or retain it. Identifiers are derived by concatenating a fixed prefix with
// the record key, which is the display name unless KeyByID is selected.
package model
