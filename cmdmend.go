// Package cmdmend provides a local, CLI-based command assistant. It
// suggests corrections for failed shell commands and answers natural
// language questions about CLI tools, grounding responses in locally
// retrieved documentation (man pages, tldr pages, cheat sheets) ranked
// by embedding similarity.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// ollama/, man/).
package cmdmend
