// Package editflow is the state machine behind the "Update Status" dialog.
//
//	Idle --Open--> Editing --Confirm--> Confirming --Succeeded--> Idle
//	                  |  ^                   |
//	                Cancel +------Failed-----+
//	                  v
//	                 Idle
//
// Confirm is guarded: without a selected device and a pending status it
// does nothing. On failure the dialog stays open with the error attached
// so the operator can resubmit or cancel.
//
// Machine is not safe for concurrent use; it belongs to the single UI loop.
package editflow
