// Package ingest reads delimited attendance and roster exports into raw rows
// and maps their arbitrary column headers onto a fixed set of semantic fields.
//
// Spreadsheet exports in the wild disagree on almost everything: "Legal Full
// Name" vs "Name", "Student Email" vs "E-mail Address", extra vendor columns
// like joinTime. The header catalog resolves each raw header to a semantic
// field using ranked substring rules; headers nothing matches are passed
// through untouched as opaque extra fields rather than dropped.
package ingest
