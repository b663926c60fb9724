package reservations_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/reservation-calendar/internal/reservations"
)

// storeDriver opens an empty store and can overwrite the raw options column
// of a row.
type storeDriver struct {
	open          func(t *testing.T) reservations.Store
	setRawOptions func(t *testing.T, id int64, raw string)
}

func sample(id int64, business string, start time.Time, opts ...string) reservations.Reservation {
	if opts == nil {
		opts = []string{}
	}
	return reservations.Reservation{
		ID:           id,
		BusinessID:   77,
		BusinessName: business,
		ItemID:       5,
		ItemName:     "60min Massage",
		Start:        start,
		End:          start.Add(time.Hour),
		Options:      opts,
		Location:     "123 Main St",
	}
}

var march1 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func runStoreSuite(t *testing.T, d storeDriver) {
	ctx := context.Background()

	t.Run("EmptyList", func(t *testing.T) {
		repo := d.open(t)

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("UpsertIsIdempotent", func(t *testing.T) {
		repo := d.open(t)

		r := sample(1001, "Spa X", march1, "Oil")
		require.NoError(t, repo.Upsert(ctx, r))
		require.NoError(t, repo.Upsert(ctx, r))

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, r, got[0])
	})

	t.Run("LastWriteWins", func(t *testing.T) {
		for _, order := range [][2]string{{"Spa X", "Spa Y"}, {"Spa Y", "Spa X"}} {
			repo := d.open(t)

			require.NoError(t, repo.Upsert(ctx, sample(1001, order[0], march1)))
			require.NoError(t, repo.Upsert(ctx, sample(1001, order[1], march1.Add(time.Hour), "Hot stone")))

			got, err := repo.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, sample(1001, order[1], march1.Add(time.Hour), "Hot stone"), got[0])
		}
	})

	t.Run("OptionsRoundTrip", func(t *testing.T) {
		repo := d.open(t)

		cases := [][]string{
			{},
			{"Oil"},
			{"z", "a", "m", "a"},
			{"with,comma", "with \"quote\"", "줄\n바꿈", ""},
		}
		for i, opts := range cases {
			require.NoError(t, repo.Upsert(ctx, sample(int64(i+1), "Spa", march1.Add(time.Duration(i)*time.Hour), opts...)))
		}

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, len(cases))
		for i, opts := range cases {
			assert.Equal(t, opts, got[i].Options, "case %d", i)
		}
	})

	t.Run("NilOptionsStoredAsEmpty", func(t *testing.T) {
		repo := d.open(t)

		r := sample(1, "Spa", march1)
		r.Options = nil
		require.NoError(t, repo.Upsert(ctx, r))

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, []string{}, got[0].Options)
	})

	t.Run("OrderedByStartThenID", func(t *testing.T) {
		repo := d.open(t)

		require.NoError(t, repo.Upsert(ctx, sample(3, "C", march1.Add(48*time.Hour))))
		require.NoError(t, repo.Upsert(ctx, sample(4, "D", march1)))
		require.NoError(t, repo.Upsert(ctx, sample(1, "A", march1)))
		require.NoError(t, repo.Upsert(ctx, sample(2, "B", march1.Add(24*time.Hour))))

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, []int64{1, 4, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
	})

	t.Run("StoresUTC", func(t *testing.T) {
		repo := d.open(t)

		kst := time.FixedZone("KST", 9*3600)
		r := sample(1, "Spa", time.Date(2024, 3, 1, 19, 0, 0, 0, kst))
		require.NoError(t, repo.Upsert(ctx, r))

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, march1.Equal(got[0].Start))
		assert.Equal(t, time.UTC, got[0].Start.Location())
		assert.True(t, march1.Add(time.Hour).Equal(got[0].End))
	})

	t.Run("MalformedOptions", func(t *testing.T) {
		repo := d.open(t)

		require.NoError(t, repo.Upsert(ctx, sample(1, "Spa", march1, "Oil")))
		d.setRawOptions(t, 1, "Oil,Towel")

		_, err := repo.ListAll(ctx)
		require.ErrorIs(t, err, reservations.ErrDecode)
	})

	t.Run("ConcurrentUpserts", func(t *testing.T) {
		repo := d.open(t)

		var wg sync.WaitGroup
		for i := 1; i <= 20; i++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				assert.NoError(t, repo.Upsert(ctx, sample(id%5+1, "Spa", march1)))
			}(int64(i))
		}
		wg.Wait()

		got, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})
}
