package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/giftwatch"
	main "github.com/fwojciec/giftwatch/cmd/giftwatch"
	"github.com/fwojciec/giftwatch/mock"
	"github.com/fwojciec/giftwatch/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates idea with flags", func(t *testing.T) {
		t.Parallel()

		var created *giftwatch.Idea
		deps, stdout, _ := testDeps()
		deps.Ideas = &mock.IdeaService{
			CreateIdeaFn: func(_ context.Context, idea *giftwatch.Idea) error {
				idea.ID = "idea-1"
				created = idea
				return nil
			},
		}

		cmd := &main.AddCmd{
			Title:    "Lamp",
			URL:      "https://shop.example/lamp",
			Person:   "Anna",
			Occasion: "birthday",
			Currency: "CHF",
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Anna", created.Person)
		assert.Equal(t, "birthday", created.Occasion)
		assert.Equal(t, giftwatch.CHF, created.Currency)
		assert.Equal(t, "Added idea \"Lamp\" (idea-1)\n", stdout.String())
	})

	t.Run("reports validation error", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps()
		deps.Ideas = &mock.IdeaService{
			CreateIdeaFn: func(_ context.Context, idea *giftwatch.Idea) error {
				return idea.Validate()
			},
		}

		cmd := &main.AddCmd{Title: "Lamp", URL: "shop.example/lamp", Currency: "EUR"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, giftwatch.EINVALID, giftwatch.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "error: idea URL must start with http:// or https://")
	})

	t.Run("checks price right away", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps()
		deps.Ideas = &mock.IdeaService{
			CreateIdeaFn: func(_ context.Context, idea *giftwatch.Idea) error {
				idea.ID = "idea-1"
				return nil
			},
		}
		deps.Tracker = &track.Tracker{
			Ideas: deps.Ideas,
			Prices: &mock.PricePointService{
				CreatePricePointFn: func(context.Context, *giftwatch.PricePoint) error { return nil },
			},
			Checker: &mock.PriceChecker{
				CheckPriceFn: func(context.Context, string) *giftwatch.PriceResult {
					return &giftwatch.PriceResult{Price: 19.99, Currency: giftwatch.EUR, Source: "meta:og:price:amount"}
				},
			},
		}

		cmd := &main.AddCmd{Title: "Lamp", URL: "https://shop.example/lamp", Currency: "EUR", Check: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Lamp: 19,99 EUR (meta:og:price:amount)\n")
	})
}
