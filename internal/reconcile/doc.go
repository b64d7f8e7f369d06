// Package reconcile orchestrates one import run end to end: read the file,
// map its headers, build typed records, match them against the enrolled
// roster, and hand the suggestions to review or committal.
//
// Each run owns its own field mapping and assignment state, so concurrent
// runs over different files never share mutable state. Row-level email
// errors block matching for the whole batch pending user correction;
// warnings ride along as data and never stop the run.
package reconcile
