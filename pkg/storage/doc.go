// Package storage holds uploaded resume files.
//
// The server never serves these bytes back out verbatim; they exist so
// a resume can be re-extracted later (new parser, better engine)
// without asking the user to upload again.
//
// Two backends exist: local disk for development and single-node
// deployments, and S3 (or any S3-compatible store via a custom
// endpoint) for everything else.
package storage
