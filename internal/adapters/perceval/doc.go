// Package perceval reads the items written by the Perceval collector: one JSON
// object per line, optionally gzip or zstd compressed.
package perceval
