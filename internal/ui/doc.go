// Package ui renders the non-interactive camctl output.
//
// These components follow a "render once and exit" pattern: the list and
// set-status commands print a header, a device table or a result box, and
// return. The interactive browser lives in package tui and shares the
// palette defined here.
//
// # Components
//
//   - RenderHeader: command banner with ordered parameters
//   - RenderDeviceTable: lipgloss table of a camview.Screen, status cells
//     coloured by chip, followed by the paging summary
//   - RenderCompact: tab-separated rows for pipes
//   - Result: success, failure and warning boxes; failures carry the
//     directory troubleshooting hints
//   - Printer.ConfirmChange: y/N prompt before a remote update
//
// # Logging Integration
//
// Logging is controlled by CAMCTL_LOG_LEVEL. When unset, zap is silent so
// the rendered output stays clean.
package ui
