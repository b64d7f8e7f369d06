// Package match reconciles imported person records against the enrolled
// roster.
//
// Matching is two-tier: a case-insensitive exact email hit is authoritative
// and short-circuits everything else; otherwise ranked fuzzy name candidates
// are produced with scores and per-signal reasons for human review. Every
// suggestion carries a confidence tier (exact, high, medium, low, none)
// derived from its best score. "None" is a normal outcome, not an error.
package match
