package dashboard

import (
	"context"
	"errors"
)

// ProductDeleter is the one API call the confirmation modal needs.
type ProductDeleter interface {
	DeleteProduct(ctx context.Context, id string) error
}

// ErrNothingStaged is returned when Confirm runs without a staged id.
var ErrNothingStaged = errors.New("no delete staged")

// DeleteConfirm models the delete confirmation modal: a delete action stages
// an id, and only an explicit confirmation reaches the backend.
type DeleteConfirm struct {
	pendingID string
}

// Stage records the product a delete was requested for.
func (d *DeleteConfirm) Stage(productID string) {
	d.pendingID = productID
}

// Pending returns the staged id, if any.
func (d *DeleteConfirm) Pending() string {
	return d.pendingID
}

// Confirm deletes the staged product and clears the stage. The stage is
// cleared even on failure so a retry has to be staged again.
func (d *DeleteConfirm) Confirm(ctx context.Context, api ProductDeleter) error {
	if d.pendingID == "" {
		return ErrNothingStaged
	}
	id := d.pendingID
	d.pendingID = ""
	return api.DeleteProduct(ctx, id)
}

// Cancel clears the staged id without calling the backend.
func (d *DeleteConfirm) Cancel() {
	d.pendingID = ""
}
