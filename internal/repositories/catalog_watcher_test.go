package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
	"github.com/sayuryunur/storefront/internal/repositories/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeListener struct {
	ch     chan *pq.Notification
	closed bool
}

func newFakeListener() *fakeListener {
	return &fakeListener{ch: make(chan *pq.Notification, 4)}
}

func (f *fakeListener) NotificationChannel() <-chan *pq.Notification { return f.ch }
func (f *fakeListener) Ping() error                                  { return nil }
func (f *fakeListener) Close() error                                 { f.closed = true; return nil }

func receive(t *testing.T, out <-chan []*models.Product) []*models.Product {
	t.Helper()

	select {
	case snapshot, ok := <-out:
		require.True(t, ok, "snapshot channel closed early")
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestCatalogWatcher(t *testing.T) {
	first := []*models.Product{{ID: "p-1", Stock: 3}}
	second := []*models.Product{{ID: "p-1", Stock: 1}}

	t.Run("Success - Initial, notify and reconnect snapshots in order", func(t *testing.T) {
		// Arrange
		repo := new(mocks.ProductRepository)
		listener := newFakeListener()
		watcher := repository.NewCatalogWatcher(repo, listener, 0)

		repo.On("ListAll", mock.Anything).Return(first, nil).Once()
		repo.On("ListAll", mock.Anything).Return(second, nil).Twice()

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		out := make(chan []*models.Product)
		done := make(chan error, 1)

		// Act
		go func() { done <- watcher.Run(ctx, out) }()

		// Assert
		assert.Equal(t, first, receive(t, out))

		listener.ch <- &pq.Notification{Channel: "catalog_changed", Extra: "UPDATE"}
		assert.Equal(t, second, receive(t, out))

		listener.ch <- nil
		assert.Equal(t, second, receive(t, out))

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)

		_, open := <-out
		assert.False(t, open, "out should be closed when Run returns")
		repo.AssertExpectations(t)
	})

	t.Run("Failure - List error skips the snapshot", func(t *testing.T) {
		// Arrange
		repo := new(mocks.ProductRepository)
		listener := newFakeListener()
		watcher := repository.NewCatalogWatcher(repo, listener, 0)

		repo.On("ListAll", mock.Anything).Return(nil, errors.New("connection refused")).Once()
		repo.On("ListAll", mock.Anything).Return(second, nil).Once()

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		out := make(chan []*models.Product)
		done := make(chan error, 1)

		// Act
		go func() { done <- watcher.Run(ctx, out) }()
		listener.ch <- &pq.Notification{Channel: "catalog_changed"}

		// Assert
		assert.Equal(t, second, receive(t, out))

		cancel()
		<-done
		repo.AssertExpectations(t)
	})

	t.Run("Success - Closed listener ends the watcher", func(t *testing.T) {
		// Arrange
		repo := new(mocks.ProductRepository)
		listener := newFakeListener()
		watcher := repository.NewCatalogWatcher(repo, listener, 0)

		repo.On("ListAll", mock.Anything).Return(first, nil).Once()

		out := make(chan []*models.Product, 1)
		close(listener.ch)

		// Act
		err := watcher.Run(t.Context(), out)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, first, <-out)
		require.NoError(t, watcher.Close())
		assert.True(t, listener.closed)
	})
}
