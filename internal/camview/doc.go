// Package camview owns the state of the camera directory view.
//
// A Store combines the loaded snapshot with the filter criteria, the
// pagination state and the edit workflow. Every change is a method call
// that applies one event; Screen derives what should be drawn.
//
// # Load lifecycle
//
//	Idle -> Loading -> Loaded
//	               \-> Failed(message)
//
// Each fetch is issued a Ticket by BeginFetch. CompleteFetch ignores any
// ticket other than the newest, so overlapping reloads resolve to the last
// one started regardless of arrival order. A successful fetch replaces the
// snapshot and resets the criteria and paging.
//
// # Updates
//
// A successful status update closes the dialog and requires a full refetch:
// the snapshot is never patched locally. A failed update leaves the dialog
// open, sets Notice, and does not touch the load state.
//
// Controller performs the remote calls synchronously against a Directory
// for callers that do not have an event loop.
package camview
