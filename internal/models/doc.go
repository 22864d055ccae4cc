// Package models defines domain entities shared across the muse client.
//
// The package contains two categories of types:
//
// 1. Conversation types built by the extraction layer and owned by the chat session:
//   - [ChatMessage] : One turn of the conversation, append-only once logged
//   - [ImageReference] : Cover-art URL with a best-effort [ImageKind] classification
//   - [WrappedSummary] : "Year in review" record recovered from an assistant reply
//
// 2. Boundary types mirrored from the assistant backend's JSON:
//   - [UserProfile] : Authenticated user profile from the auth status endpoint
//   - [ProfileImage] : Avatar resource attached to a profile
//
// Extracted structures ([ImageReference], [WrappedSummary]) are created once
// per assistant turn and are immutable after being attached to their message.
// Nothing in this package validates that extracted URLs resolve; classification
// is a parsing concern, not a network one.
package models
