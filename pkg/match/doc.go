// Package match scores a resume against a job posting.
//
// The core scorer is deterministic: skills are extracted from both
// texts with a fixed dictionary, weighted by whether the posting marks
// them required, and combined with a seniority alignment estimate.
// When an AI provider is configured its verdict is blended in at a
// fixed weight; provider failures degrade silently to the
// deterministic result.
package match
