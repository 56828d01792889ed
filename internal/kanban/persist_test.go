package kanban

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "kanban_state.json"))
}

func TestStore_LoadWithoutFileSeedsFirstStage(t *testing.T) {
	s := tempStore(t)

	board, err := s.Load([]Card{{CTE: "1", NF: "a"}, {CTE: "2", NF: "b"}})
	require.NoError(t, err)

	assert.Len(t, board.Cards(StageCollecting), 2)
	for _, stage := range Stages[1:] {
		assert.Empty(t, board.Cards(stage))
	}

	// Load alone must not create the file.
	_, statErr := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_SaveThenLoadRoundTrip(t *testing.T) {
	s := tempStore(t)

	board, err := s.Load([]Card{{CTE: "1", NF: "a", Fields: map[string]string{"emissor": "Mobis"}}})
	require.NoError(t, err)
	_, err = s.AdvanceAndSave(board, "1", "a")
	require.NoError(t, err)

	// A fresh load sees the moved card, its fields, and the move log.
	reloaded, err := s.Load(nil)
	require.NoError(t, err)
	stage, err := reloaded.StageOf("1", "a")
	require.NoError(t, err)
	assert.Equal(t, StageSorting, stage)
	assert.Equal(t, "Mobis", reloaded.Cards(StageSorting)[0].Fields["emissor"])
	require.Len(t, reloaded.Moves, 1)
	assert.Equal(t, StageCollecting, reloaded.Moves[0].From)
}

func TestStore_EveryMoveIsWrittenThrough(t *testing.T) {
	s := tempStore(t)
	board, err := s.Load([]Card{{CTE: "1", NF: "a"}})
	require.NoError(t, err)

	for i := 0; i < len(Stages)-1; i++ {
		_, err := s.AdvanceAndSave(board, "1", "a")
		require.NoError(t, err)

		reloaded, err := s.Load(nil)
		require.NoError(t, err)
		stage, err := reloaded.StageOf("1", "a")
		require.NoError(t, err)
		assert.Equal(t, Stages[i+1], stage)
	}
}

func TestStore_RejectedAuthLeavesFileUnchanged(t *testing.T) {
	s := tempStore(t)
	board, err := s.Load([]Card{{CTE: "1", NF: "a"}})
	require.NoError(t, err)
	require.NoError(t, s.Save(board))

	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	_, err = s.AdvanceWithAuthAndSave(board, "1", "a", "wrong", "s3cret")
	assert.ErrorIs(t, err, ErrUnauthorized)

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestStore_LoadToleratesMissingColumns(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"columns":{"Em Coleta":[{"cte":"1","nf":"a"}]}}`), 0o644))

	board, err := s.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Len())
	for _, stage := range Stages {
		assert.NotNil(t, board.Columns[stage])
	}
}
