// Package ai wraps the optional LLM providers behind one interface.
//
// Everything in this codebase that talks to a model goes through
// Provider.Complete. Providers are optional: the match and coaching
// engines produce deterministic output on their own and only use a
// provider to enrich it, degrading silently when the call fails.
package ai
