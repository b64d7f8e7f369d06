// Package enrollment persists the known-person roster and finalized
// attendance assignments in SQLite.
//
// The store owns the people table the matcher reads from and the attendance
// table finalized assignments are committed into. A file lock in the data
// directory serializes writers so two concurrent imports cannot interleave.
// Schema changes ship as embedded migrations applied on open.
package enrollment
