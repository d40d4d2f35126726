// Package rocket drives the phased coaching conversation.
//
// A session moves through five phases: intro, story_discovery,
// achievement_mining, quantification and synthesis. Phases only move
// forward. Transitions are deterministic, driven by what the user's
// message contains (word count, achievements, metrics) and by how many
// exchanges the current phase has taken, so a session can never stall
// in one phase.
//
// The engine itself is stateless. Per-session progress travels in a
// State value that the caller persists in the session row's metadata
// column between turns.
//
// Replies are assembled from the persona's question templates and the
// achievements mined so far. When an AI provider is configured it may
// rewrite the reply in the persona's voice; any provider failure falls
// back to the assembled reply without surfacing an error.
package rocket
