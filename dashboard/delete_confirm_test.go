package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeleter struct {
	deleted []string
}

func (f *fakeDeleter) DeleteProduct(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestDeleteConfirmHappyPath(t *testing.T) {
	api := &fakeDeleter{}
	var modal DeleteConfirm

	modal.Stage("p1")
	assert.Equal(t, "p1", modal.Pending())

	require.NoError(t, modal.Confirm(context.Background(), api))
	assert.Equal(t, []string{"p1"}, api.deleted)
	assert.Empty(t, modal.Pending(), "stage cleared after confirmation")
}

func TestDeleteConfirmCancelNeverCallsBackend(t *testing.T) {
	api := &fakeDeleter{}
	var modal DeleteConfirm

	modal.Stage("p1")
	modal.Cancel()

	assert.Empty(t, modal.Pending())
	assert.Equal(t, ErrNothingStaged, modal.Confirm(context.Background(), api))
	assert.Empty(t, api.deleted)
}

func TestDeleteConfirmRestageReplacesPending(t *testing.T) {
	api := &fakeDeleter{}
	var modal DeleteConfirm

	modal.Stage("p1")
	modal.Stage("p2")

	require.NoError(t, modal.Confirm(context.Background(), api))
	assert.Equal(t, []string{"p2"}, api.deleted)
}
