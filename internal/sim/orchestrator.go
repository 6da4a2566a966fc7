package sim

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HPduToit/PGN-Streaming-Simulator/internal/config"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/obslog"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/pgn"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/rules"
)

// slot is one board lane. Owned exclusively by its driving goroutine once
// Run starts; session becomes nil when the board goes idle.
type slot struct {
	board   int
	session *Session
}

// Orchestrator owns the pool of board sessions and drives each on its own
// timer. Persistence failures on one board never stop the others.
type Orchestrator struct {
	cfg    *config.AppConfig
	engine rules.Engine
	writer *pgn.Writer
	slots  []*slot

	wg sync.WaitGroup
}

func NewOrchestrator(cfg *config.AppConfig, engine rules.Engine, writer *pgn.Writer) *Orchestrator {
	o := &Orchestrator{cfg: cfg, engine: engine, writer: writer}
	hdr := Headers{Event: cfg.Event, Site: cfg.Site, RoundPrefix: cfg.RoundPrefix}
	for board := 1; board <= cfg.Boards; board++ {
		o.slots = append(o.slots, &slot{
			board:   board,
			session: NewSession(engine, board, 1, hdr, cfg.MaxMoves, newRNG(board)),
		})
	}
	return o
}

func newRNG(board int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(board)))
}

// Run writes the initial record for every board, starts one timer
// goroutine per board, and blocks until ctx is cancelled. On return every
// board has been flushed to a complete on-disk state.
func (o *Orchestrator) Run(ctx context.Context) error {
	for _, sl := range o.slots {
		if err := o.flush(sl); err != nil {
			obslog.L().Error("initial flush failed",
				zap.Int("board", sl.board), zap.Error(err))
		}
	}
	obslog.L().Info("simulation started",
		zap.Int("boards", len(o.slots)),
		zap.Duration("move_interval", o.cfg.MoveInterval),
		zap.Bool("auto_restart", o.cfg.AutoRestart),
	)

	for _, sl := range o.slots {
		o.wg.Add(1)
		go o.runBoard(ctx, sl)
	}
	o.wg.Wait()

	// Final pass so shutdown never leaves a record behind its session.
	for _, sl := range o.slots {
		if sl.session == nil {
			continue
		}
		if err := o.flush(sl); err != nil {
			obslog.L().Error("final flush failed",
				zap.Int("board", sl.board), zap.Error(err))
		}
	}
	obslog.L().Info("simulation stopped")
	return nil
}

// runBoard is the single writer for one board's state and file.
func (o *Orchestrator) runBoard(ctx context.Context, sl *slot) {
	defer o.wg.Done()
	ticker := time.NewTicker(o.cfg.MoveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if sl.session == nil {
			return
		}
		o.tick(sl)
	}
}

func (o *Orchestrator) tick(sl *slot) {
	s := sl.session
	p := s.Advance()

	if p.MoveSAN != "" {
		obslog.L().Info("move",
			zap.Int("board", sl.board),
			zap.String("no", MoveLabel(p.Ply)),
			zap.String("san", p.MoveSAN),
		)
	}

	if err := o.flush(sl); err != nil {
		// Leave the session as is; the whole record is re-rendered on the
		// next tick, so a transient write failure heals itself.
		obslog.L().Error("flush failed, retrying next tick",
			zap.Int("board", sl.board), zap.Error(err))
		return
	}
	if !p.Finished {
		return
	}

	obslog.L().Info("game finished",
		zap.Int("board", sl.board),
		zap.String("game_id", s.ID()),
		zap.String("result", p.Result),
		zap.String("reason", p.Reason),
		zap.Int("plies", p.Ply),
	)

	if o.cfg.TournamentFile {
		if err := o.writer.AppendArchive(pgn.Render(s.Record())); err != nil {
			obslog.L().Error("archive append failed",
				zap.Int("board", sl.board), zap.Error(err))
		}
	}

	if !o.cfg.AutoRestart {
		sl.session = nil
		obslog.L().Info("board idle", zap.Int("board", sl.board))
		return
	}

	hdr := Headers{Event: o.cfg.Event, Site: o.cfg.Site, RoundPrefix: o.cfg.RoundPrefix}
	sl.session = NewSession(o.engine, sl.board, s.GameIndex()+1, hdr, o.cfg.MaxMoves, newRNG(sl.board))
	if err := o.flush(sl); err != nil {
		obslog.L().Error("restart flush failed",
			zap.Int("board", sl.board), zap.Error(err))
	}
	obslog.L().Info("board restarted",
		zap.Int("board", sl.board),
		zap.Int("game_index", sl.session.GameIndex()),
	)
}

func (o *Orchestrator) flush(sl *slot) error {
	return o.writer.Flush(sl.board, pgn.Render(sl.session.Record()))
}
