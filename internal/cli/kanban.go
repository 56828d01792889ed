package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cargarastreada/logistica/internal/kanban"
	"github.com/cargarastreada/logistica/internal/shipment"
	"github.com/cargarastreada/logistica/internal/store"
)

// KanbanOptions holds flags for the kanban subcommands.
type KanbanOptions struct {
	*RootOptions
	Senha string
}

// NewKanbanCommand creates the kanban command group for the after-sales
// planning board.
func NewKanbanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KanbanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "kanban",
		Short: "After-sales planning board",
		Long: `Show and mutate the kanban board. Cards progress through the five
stages in order; moves require the configured password and are written
through to the state file before completing.`,
	}

	cmd.AddCommand(newKanbanListCommand(opts))
	cmd.AddCommand(newKanbanSeedCommand(opts))
	cmd.AddCommand(newKanbanAdvanceCommand(opts))

	return cmd
}

// loadBoard opens the persisted board, seeding from the shipment table on
// first use.
func loadBoard(opts *KanbanOptions, cmd *cobra.Command) (*kanban.Store, *kanban.Board, error) {
	cfg, err := opts.Config()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load config", err)
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open database", err)
	}
	defer db.Close()

	records, err := db.QueryShipments(cmd.Context(), store.ShipmentQuery{})
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "query shipments", err)
	}

	cards := cardsFromRecords(shipment.Collapse(records))
	ks := kanban.NewStore(cfg.Kanban.StatePath)
	board, err := ks.Load(cards)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load kanban state", err)
	}
	return ks, board, nil
}

func cardsFromRecords(records []shipment.Record) []kanban.Card {
	cards := make([]kanban.Card, len(records))
	for i, rec := range records {
		fields := map[string]string{}
		if rec.Issuer != "" {
			fields["emissor"] = rec.Issuer
		}
		if rec.DestinationCity != "" {
			fields["cidade"] = rec.DestinationCity
		}
		if rec.Hub != "" {
			fields["hub"] = rec.Hub
		}
		cards[i] = kanban.Card{CTE: rec.CTE, NF: rec.NF, Fields: fields}
	}
	return cards
}

func newKanbanListCommand(opts *KanbanOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "Show the board",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, board, err := loadBoard(opts, cmd)
			if err != nil {
				return err
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				return out.SuccessJSON(board)
			}
			for _, stage := range kanban.Stages {
				cards := board.Cards(stage)
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", stage, len(cards))
				if len(cards) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "  Nenhum cartão aqui.")
					continue
				}
				for _, card := range cards {
					fmt.Fprintf(cmd.OutOrStdout(), "  CTe %s / NF %s\n", card.CTE, card.NF)
				}
			}
			return nil
		},
	}
}

func newKanbanSeedCommand(opts *KanbanOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "seed",
		Short:         "Seed new shipments into the first stage and persist",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, board, err := loadBoard(opts, cmd)
			if err != nil {
				return err
			}
			if err := ks.Save(board); err != nil {
				return WrapExitError(ExitCommandError, "save kanban state", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Board salvo com %d cartões em %s\n", board.Len(), ks.Path())
			return nil
		},
	}
}

func newKanbanAdvanceCommand(opts *KanbanOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "advance <cte> <nf>",
		Short:         "Move a card to the next stage",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Config()
			if err != nil {
				return WrapExitError(ExitCommandError, "load config", err)
			}

			ks, board, err := loadBoard(opts, cmd)
			if err != nil {
				return err
			}

			event, err := ks.AdvanceWithAuthAndSave(board, args[0], args[1], opts.Senha, cfg.Kanban.Secret)
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			switch {
			case errors.Is(err, kanban.ErrUnauthorized):
				out.Error(CodeUnauthorized, "senha incorreta, permissão negada", nil)
				return WrapExitError(ExitFailure, "authorization denied", err)
			case errors.Is(err, kanban.ErrTerminalStage):
				out.Error(CodeTerminalStage, "cartão já está em Entrega Concluída", nil)
				return WrapExitError(ExitFailure, "terminal stage", err)
			case errors.Is(err, kanban.ErrCardNotFound):
				out.Error(CodeNotFound, fmt.Sprintf("cartão %s/%s não encontrado", args[0], args[1]), nil)
				return WrapExitError(ExitFailure, "card not found", err)
			case err != nil:
				return WrapExitError(ExitCommandError, "advance card", err)
			}

			if opts.Format == "json" {
				return out.SuccessJSON(event)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "CTe %s / NF %s movido: %s -> %s\n", event.CTE, event.NF, event.From, event.To)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Senha, "senha", "", "board password")

	return cmd
}
