package main_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/giftwatch"
	main "github.com/fwojciec/giftwatch/cmd/giftwatch"
	"github.com/fwojciec/giftwatch/mock"
	"github.com/fwojciec/giftwatch/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid schedule", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps()
		deps.Logger = slog.New(slog.DiscardHandler)
		deps.Tracker = &track.Tracker{}

		err := (&main.WatchCmd{Schedule: "every tuesday"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, giftwatch.EINVALID, giftwatch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "invalid schedule")
	})

	t.Run("checks on start and stops when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var once sync.Once
		checked := make(chan struct{})
		deps, stdout, _ := testDeps()
		deps.Ctx = ctx
		deps.Logger = slog.New(slog.DiscardHandler)
		deps.Tracker = &track.Tracker{
			Ideas: &mock.IdeaService{
				FindIdeasFn: func(context.Context, giftwatch.IdeaFilter) ([]*giftwatch.Idea, error) {
					once.Do(func() { close(checked) })
					return nil, nil
				},
			},
		}

		done := make(chan error, 1)
		go func() {
			done <- (&main.WatchCmd{Schedule: "@daily", Concurrency: 2}).Run(deps)
		}()

		select {
		case <-checked:
		case <-time.After(5 * time.Second):
			t.Fatal("initial check did not run")
		}
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watch did not stop")
		}

		out := stdout.String()
		assert.Contains(t, out, `Watching prices on schedule "@daily"`)
		assert.Contains(t, out, "Checked 0 ideas: 0 prices recorded, 0 without price, 0 failed\n")
		assert.Contains(t, out, "Stopped watching.\n")
	})

	t.Run("no initial check waits for schedule", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		deps, stdout, _ := testDeps()
		deps.Ctx = ctx
		deps.Logger = slog.New(slog.DiscardHandler)
		deps.Tracker = &track.Tracker{
			Ideas: &mock.IdeaService{
				FindIdeasFn: func(context.Context, giftwatch.IdeaFilter) ([]*giftwatch.Idea, error) {
					t.Error("ideas should not be checked")
					return nil, nil
				},
			},
		}

		err := (&main.WatchCmd{Schedule: "@daily", NoInitial: true}).Run(deps)

		require.NoError(t, err)
		assert.NotContains(t, stdout.String(), "checking prices")
		assert.Contains(t, stdout.String(), "Stopped watching.\n")
	})
}
