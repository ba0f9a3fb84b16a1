// Package document hosts rendered fragments. A Target receives fragments in
// append order; Document is an in-memory HTML page whose containers are
// Targets, and WriterTarget streams fragments to any io.Writer.
package document
