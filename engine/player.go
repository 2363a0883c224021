package engine

import (
	"context"

	"connectfour/game"
	"connectfour/searcher/agent"
)

// Player chooses the column for side. The board is a copy the player may
// keep.
type Player interface {
	NextMove(ctx context.Context, board *game.Board, side game.Piece) (int, error)
}

// AgentPlayer lets a search agent play.
type AgentPlayer struct {
	Agent agent.Agent
}

func NewAgentPlayer(a agent.Agent) *AgentPlayer {
	return &AgentPlayer{Agent: a}
}

func (p *AgentPlayer) NextMove(ctx context.Context, board *game.Board, side game.Piece) (int, error) {
	d, err := p.Agent.FindMove(ctx, board, side)
	return d.Column, err
}

// MoveSource delivers columns typed or clicked by a person.
type MoveSource interface {
	ReadMove(ctx context.Context) (int, error)
}

// InputPlayer plays the columns read from a MoveSource. A column the board
// rejects is reported to the presenter and the player is asked again.
type InputPlayer struct {
	Source MoveSource
}

func NewInputPlayer(source MoveSource) *InputPlayer {
	return &InputPlayer{Source: source}
}

func (p *InputPlayer) NextMove(ctx context.Context, _ *game.Board, _ game.Piece) (int, error) {
	return p.Source.ReadMove(ctx)
}

const ErrSourceClosed game.Error = "move source is closed"

// ChannelSource reads columns from a channel. Closing the channel ends the
// game with ErrSourceClosed.
type ChannelSource <-chan int

func (c ChannelSource) ReadMove(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case col, ok := <-c:
		if !ok {
			return 0, ErrSourceClosed
		}
		return col, nil
	}
}
