// Package tui implements the interactive camera browser using Bubble Tea.
//
// # Screens
//
// The browser has one main screen whose body follows the load state:
//
//   - Loading: a spinner; the table is withheld
//   - Failed: the fetch error and troubleshooting hints; no spinner, no table
//   - Loaded: filter inputs, the paged device table and its summary
//
// The "Update Status" dialog and the key help are modals drawn with
// RenderModal over a dimmed backdrop.
//
// # State
//
// AppModel keeps no view state of its own beyond widgets, focus and the
// row cursor. Filters, paging and the edit workflow live in a
// camview.Store, which the model drives with one method call per event.
//
// # Async Operations
//
// Remote calls run as tea.Cmds and report back as messages:
//
//	fetchDoneMsg  -> Store.CompleteFetch (stale tickets are dropped)
//	updateDoneMsg -> Store.CompleteUpdate, then a new fetch on success
//
// # Screen Container
//
// Every screen is wrapped by RenderApplicationContainer, which draws the
// header, pins the help footer to the bottom and fills the terminal.
package tui
