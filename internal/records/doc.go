// Package records turns raw ingest rows into typed, validated person records.
//
// Each row is resolved against the file's field mapping: the name is built
// from a fallback chain (full name, first+middle+last, first, last), the
// email is shape-checked, and unrecognized columns ride along as opaque
// extras. Rows that cannot identify a person are dropped and tallied rather
// than failing the import; only a malformed email is a hard per-row error.
// Duplicate emails and names within one file are reported as warnings but
// kept, since collapsing them is the assignment layer's decision.
package records
