// Package persona defines the coaching persona catalog and the
// recommendation selector.
//
// Personas are static: the registry compiled into the binary is the
// authoritative source. The persona_profiles table mirrors it (kept in
// sync by `rocketctl seed`) so conversation sessions can reference
// personas by foreign key.
//
// # Recommendation
//
// Recommend returns up to three personas for a goal and career stage.
// Goal matches rank ahead of career-stage matches; within a band the
// registry order is kept; duplicates collapse to the first hit. Inputs
// that match nothing fall back to the default trio.
package persona
