// Package directory is the HTTP client for the remote camera directory.
//
// The directory exposes two operations:
//
//	GET  /app/v1/fetch/cameras          -> { "data": [ Device, ... ] }
//	PUT  /app/v1/update/camera/status   <- { "status": "Active", "id": "..." }
//
// Both carry an "Authorization: Bearer <token>" header. Any non-2xx response
// is a failure.
//
// # Usage
//
//	client := directory.NewClient(cfg.API.BaseURL, token)
//	client.SetTimeout(5 * time.Second)
//
//	cameras, err := client.FetchAll(ctx)
//	if err != nil {
//	    fmt.Println(directory.ShortMessage(err))
//	    return err
//	}
//
//	if err := client.UpdateStatus(ctx, cameras[0].ID, directory.StatusInactive); err != nil {
//	    return err
//	}
//	// UpdateStatus does not touch local state; fetch again to reconcile.
//	cameras, err = client.FetchAll(ctx)
//
// # Errors
//
// Every failure is a *TransportError classified by Kind (timeout, DNS, auth,
// HTTP, parse, validation, ...). There are no retries and no backoff. Use
// ShortMessage and Hint to build operator-facing text.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package directory
