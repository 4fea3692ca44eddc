// Package model provides the intermediate representation shared by the
// recognition, reconstruction and normalization stages.
//
// All stages exchange these types, making them the primary API for consuming
// a scanned lab report.
//
// # Coordinates
//
// Token coordinates are normalized to the page: 0 is the left/top edge and 1
// is the right/bottom edge. The vertical axis is top-down, so the topmost
// token has the smallest [Token.YCenter]. Recognizers that report bottom-up
// coordinates convert with [FlipVertical] or [Token.Flipped].
//
// # Tables
//
// A [Table] is a flat sequence of [Row] values collected across every page of
// a document in page order, then top to bottom. There is no header/body
// distinction; row 0 is an ordinary row. Export helpers:
//
//   - GetText() - tab separated lines, the form sent to the chat model
//   - ToMarkdown() - markdown table
//   - ToCSV() - RFC 4180 style CSV
//
// # Records
//
// A [Record] is one normalized entry decoded from a chat-completion answer.
// Its confidence is always within [0, 100]; see [ClampConfidence].
package model
