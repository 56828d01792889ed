// Package kanban implements the after-sales planning board: five ordered
// stages, cards keyed by (CTE, NF), and write-through JSON persistence.
package kanban

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage is one of the five board columns. The progression is strictly
// linear; StageDelivered is terminal.
type Stage string

const (
	StageCollecting Stage = "Em Coleta"
	StageSorting    Stage = "Em Triagem"
	StageAwaiting   Stage = "Aguardando Coleta"
	StageEnRoute    Stage = "Em Rota de Entrega"
	StageDelivered  Stage = "Entrega Concluída"
)

// Stages lists every stage in board order.
var Stages = []Stage{
	StageCollecting,
	StageSorting,
	StageAwaiting,
	StageEnRoute,
	StageDelivered,
}

// Next returns the stage a card advances into. ok is false for the
// terminal stage, where the operation is not offered.
func (s Stage) Next() (Stage, bool) {
	for i, stage := range Stages {
		if stage == s && i+1 < len(Stages) {
			return Stages[i+1], true
		}
	}
	return "", false
}

// Valid reports whether s is one of the five known stages.
func (s Stage) Valid() bool {
	for _, stage := range Stages {
		if stage == s {
			return true
		}
	}
	return false
}

// Card is a shipment-derived board entry. CTE and NF identify it; Fields
// carries whatever display columns the source row had.
type Card struct {
	CTE    string            `json:"cte"`
	NF     string            `json:"nf"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MoveEvent records one successful card move, for the audit list shown
// under the board.
type MoveEvent struct {
	ID   string    `json:"id"`
	CTE  string    `json:"cte"`
	NF   string    `json:"nf"`
	From Stage     `json:"from"`
	To   Stage     `json:"to"`
	At   time.Time `json:"at"`
}

// Board holds every card exactly once, in one stage each, plus the move
// log. Boards are plain values; persistence is the Store's job.
type Board struct {
	Columns map[Stage][]Card `json:"columns"`
	Moves   []MoveEvent      `json:"moves,omitempty"`
}

// ErrTerminalStage is returned when advancing a card already delivered.
var ErrTerminalStage = errors.New("card is in the terminal stage")

// ErrCardNotFound is returned when no stage contains the card.
var ErrCardNotFound = errors.New("card not found on the board")

// ErrUnauthorized is returned by AdvanceWithAuth on credential mismatch.
// The board is untouched in that case.
var ErrUnauthorized = errors.New("authorization denied")

// NewBoard returns an empty board with every column present.
func NewBoard() *Board {
	b := &Board{Columns: make(map[Stage][]Card, len(Stages))}
	for _, s := range Stages {
		b.Columns[s] = []Card{}
	}
	return b
}

// Seed places every card that is not yet on the board into the first
// stage, preserving input order. Cards already present anywhere are left
// where they are.
func (b *Board) Seed(cards []Card) {
	for _, card := range cards {
		if _, _, err := b.find(card.CTE, card.NF); err == nil {
			continue
		}
		b.Columns[StageCollecting] = append(b.Columns[StageCollecting], card)
	}
}

// StageOf returns the stage currently holding the card.
func (b *Board) StageOf(cte, nf string) (Stage, error) {
	stage, _, err := b.find(cte, nf)
	return stage, err
}

// Advance moves the card to the next stage. The move is a transfer:
// removed from its column, appended to the next one, never copied. A move
// event is appended to the log.
func (b *Board) Advance(cte, nf string) (MoveEvent, error) {
	stage, idx, err := b.find(cte, nf)
	if err != nil {
		return MoveEvent{}, err
	}
	next, ok := stage.Next()
	if !ok {
		return MoveEvent{}, fmt.Errorf("advance %s/%s: %w", cte, nf, ErrTerminalStage)
	}

	card := b.Columns[stage][idx]
	b.Columns[stage] = append(b.Columns[stage][:idx], b.Columns[stage][idx+1:]...)
	b.Columns[next] = append(b.Columns[next], card)

	event := MoveEvent{
		ID:   uuid.Must(uuid.NewV7()).String(),
		CTE:  cte,
		NF:   nf,
		From: stage,
		To:   next,
		At:   time.Now().UTC(),
	}
	b.Moves = append(b.Moves, event)
	return event, nil
}

// AdvanceWithAuth performs Advance only when credential matches secret.
// The comparison is constant-time; this is a shared-secret gate, not a
// credential system. On mismatch the board does not change.
func (b *Board) AdvanceWithAuth(cte, nf, credential, secret string) (MoveEvent, error) {
	if subtle.ConstantTimeCompare([]byte(credential), []byte(secret)) != 1 {
		return MoveEvent{}, fmt.Errorf("advance %s/%s: %w", cte, nf, ErrUnauthorized)
	}
	return b.Advance(cte, nf)
}

// Cards returns the column contents for a stage.
func (b *Board) Cards(stage Stage) []Card {
	return b.Columns[stage]
}

// Len returns the total number of cards on the board.
func (b *Board) Len() int {
	n := 0
	for _, cards := range b.Columns {
		n += len(cards)
	}
	return n
}

func (b *Board) find(cte, nf string) (Stage, int, error) {
	for _, stage := range Stages {
		for i, card := range b.Columns[stage] {
			if card.CTE == cte && card.NF == nf {
				return stage, i, nil
			}
		}
	}
	return "", 0, fmt.Errorf("card %s/%s: %w", cte, nf, ErrCardNotFound)
}
