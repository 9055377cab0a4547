package camview

import (
	"context"
	"errors"
	"fmt"

	"github.com/muurk/camctl/internal/directory"
)

// Directory is the remote device directory as the view consumes it.
// *directory.Client satisfies it.
type Directory interface {
	FetchAll(ctx context.Context) (directory.Collection, error)
	UpdateStatus(ctx context.Context, id string, status directory.Status) error
}

// Controller runs the remote side of the view synchronously. It is used by
// the non-interactive commands; the TUI drives the same Store through
// asynchronous commands instead.
type Controller struct {
	Store *Store
	dir   Directory
}

// NewController returns a controller over store. A nil store gets a fresh one.
func NewController(dir Directory, store *Store) *Controller {
	if store == nil {
		store = NewStore()
	}
	return &Controller{Store: store, dir: dir}
}

// Load fetches the whole directory into the store
func (c *Controller) Load(ctx context.Context) error {
	t := c.Store.BeginFetch()
	coll, err := c.dir.FetchAll(ctx)
	c.Store.CompleteFetch(t, coll, err)
	return err
}

// Confirm sends the pending edit and, once accepted, reloads the directory
// so the view reflects the remote state. A failed reload after an accepted
// update is returned wrapped in ErrRefetchFailed.
func (c *Controller) Confirm(ctx context.Context) error {
	req, ok := c.Store.ConfirmEdit()
	if !ok {
		return ErrNothingToConfirm
	}

	err := c.dir.UpdateStatus(ctx, req.DeviceID, req.Status)
	if !c.Store.CompleteUpdate(err) {
		return err
	}
	if err := c.Load(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefetchFailed, err)
	}
	return nil
}

// SetStatus is the one-shot edit used by the CLI: select id, choose status
// and confirm. The directory must already be loaded. On ErrRefetchFailed
// the update was applied and the returned device is the one sent.
func (c *Controller) SetStatus(ctx context.Context, id string, status directory.Status) (directory.Device, error) {
	if err := c.Store.OpenEdit(id); err != nil {
		return directory.Device{}, err
	}
	if err := c.Store.SetPendingStatus(status); err != nil {
		c.Store.CancelEdit()
		return directory.Device{}, err
	}
	sent, _ := c.Store.Devices().Find(id)
	sent.Status = c.Store.Edit().Pending
	if err := c.Confirm(ctx); err != nil {
		if errors.Is(err, ErrRefetchFailed) {
			return sent, err
		}
		return directory.Device{}, err
	}

	d, ok := c.Store.Devices().Find(id)
	if !ok {
		return directory.Device{}, fmt.Errorf("%w after update: %q", ErrUnknownDevice, id)
	}
	return d, nil
}
