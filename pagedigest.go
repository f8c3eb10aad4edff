// Package pagedigest turns web pages into structured, analyzable records.
// It fetches static or JavaScript-rendered pages, extracts their main
// content, recognizes a small set of structured government publication
// sources, and runs an offline heuristic analysis (keywords, extractive
// summary, named entities) over the resulting text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, gemini/).
package pagedigest
