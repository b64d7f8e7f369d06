// Package person normalizes free-text person names and scores how likely two
// of them refer to the same individual.
//
// Scoring accumulates independent signals (token equality, near-miss edit
// distance, containment, reversed ordering, shared initials) into a 0-100
// confidence value, and records a short justification for every signal that
// fired so a reviewer can see why a candidate was suggested. The weights are
// tuned against real attendance exports; see the constants in similarity.go
// before adjusting them.
package person
