package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/roomescape-reservation/internal/model"
)

func TestReservationTimeRepo_SaveAndFind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	saved, err := f.times.Save(ctx, model.ReservationTime{StartAt: model.MustTimeOfDay("12:25")})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "12:25", saved.StartAt.String())

	got, err := f.times.FetchByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	all, err := f.times.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.ReservationTime{saved}, all)
}

func TestReservationTimeRepo_Missing(t *testing.T) {
	f := newFixture(t)

	_, ok, err := f.times.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.times.FetchByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrReservationTimeNotFound)
}

func TestReservationTimeRepo_DeleteByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	free := f.addTime(t, "09:00")
	used := f.addTime(t, "10:00")
	f.addReservation(t, "a", "2025-01-01", used, f.addTheme(t, "t"))

	n, err := f.times.DeleteByID(ctx, free.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = f.times.DeleteByID(ctx, free.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = f.times.DeleteByID(ctx, used.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, ok, err := f.times.FindByID(ctx, used.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
