package kanban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_Next(t *testing.T) {
	next, ok := StageCollecting.Next()
	require.True(t, ok)
	assert.Equal(t, StageSorting, next)

	next, ok = StageEnRoute.Next()
	require.True(t, ok)
	assert.Equal(t, StageDelivered, next)

	_, ok = StageDelivered.Next()
	assert.False(t, ok, "terminal stage has no successor")
}

func TestBoard_SeedPlacesNewCardsInFirstStage(t *testing.T) {
	b := NewBoard()
	b.Seed([]Card{{CTE: "1", NF: "a"}, {CTE: "2", NF: "b"}})

	require.Len(t, b.Cards(StageCollecting), 2)
	assert.Equal(t, "1", b.Cards(StageCollecting)[0].CTE)

	// Re-seeding must not duplicate cards that already moved.
	_, err := b.Advance("1", "a")
	require.NoError(t, err)
	b.Seed([]Card{{CTE: "1", NF: "a"}, {CTE: "3", NF: "c"}})

	assert.Equal(t, 3, b.Len())
	stage, err := b.StageOf("1", "a")
	require.NoError(t, err)
	assert.Equal(t, StageSorting, stage)
}

func TestBoard_AdvanceIsTransfer(t *testing.T) {
	b := NewBoard()
	b.Seed([]Card{{CTE: "1", NF: "a"}, {CTE: "2", NF: "b"}})

	event, err := b.Advance("1", "a")
	require.NoError(t, err)
	assert.Equal(t, StageCollecting, event.From)
	assert.Equal(t, StageSorting, event.To)
	assert.NotEmpty(t, event.ID)

	// Removed from the origin column, appended to the target, total
	// unchanged.
	assert.Len(t, b.Cards(StageCollecting), 1)
	assert.Len(t, b.Cards(StageSorting), 1)
	assert.Equal(t, 2, b.Len())
	assert.Len(t, b.Moves, 1)
}

func TestBoard_AdvanceThroughAllStages(t *testing.T) {
	b := NewBoard()
	b.Seed([]Card{{CTE: "1", NF: "a"}})

	for i := 0; i < len(Stages)-1; i++ {
		_, err := b.Advance("1", "a")
		require.NoError(t, err)
	}

	stage, err := b.StageOf("1", "a")
	require.NoError(t, err)
	assert.Equal(t, StageDelivered, stage)

	_, err = b.Advance("1", "a")
	assert.ErrorIs(t, err, ErrTerminalStage)
}

func TestBoard_AdvanceUnknownCard(t *testing.T) {
	b := NewBoard()
	_, err := b.Advance("missing", "x")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestBoard_AdvanceWithAuth(t *testing.T) {
	b := NewBoard()
	b.Seed([]Card{{CTE: "1", NF: "a"}})

	_, err := b.AdvanceWithAuth("1", "a", "wrong", "s3cret")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Rejected moves leave the board untouched.
	stage, err := b.StageOf("1", "a")
	require.NoError(t, err)
	assert.Equal(t, StageCollecting, stage)
	assert.Empty(t, b.Moves)

	_, err = b.AdvanceWithAuth("1", "a", "s3cret", "s3cret")
	require.NoError(t, err)
	stage, err = b.StageOf("1", "a")
	require.NoError(t, err)
	assert.Equal(t, StageSorting, stage)
}
