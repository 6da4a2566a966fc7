package feed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/HPduToit/PGN-Streaming-Simulator/internal/obslog"
	"github.com/HPduToit/PGN-Streaming-Simulator/pkg/feeddto"
)

// Clock budget reported for running games, in centiseconds. The simulator
// has no real clocks, so pollers get a fixed one hour per side.
const runningClockCs = 360000

// The feed exposes a single round; board restarts bump the GameID tag
// instead of opening new rounds.
const servedRound = 1

// Server answers the polling HTTP protocol from store snapshots only.
// Handlers never touch the filesystem or the simulation.
type Server struct {
	store *Store
}

func NewServer(store *Store) *Server {
	return &Server{store: store}
}

// Routes builds the handler tree. The {code} segment is accepted for
// compatibility with the mimicked API and otherwise ignored.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/get/{code}/tournament.json", s.handleTournament)
	r.Get("/get/{code}/round-{round}/index.json", s.handleRoundIndex)
	r.Get("/get/{code}/round-{round}/game-{board}.json", s.handleGame)
	r.Get("/health", s.handleHealth)
	return r
}

func (s *Server) handleTournament(w http.ResponseWriter, r *http.Request) {
	boards := s.store.Boards()
	t := feeddto.Tournament{Rounds: []feeddto.RoundSummary{}}
	if len(boards) > 0 {
		live := 0
		for _, b := range boards {
			if snap, ok := s.store.Get(b); ok && !snap.Finished() {
				live++
			}
		}
		if snap, ok := s.store.Get(boards[0]); ok {
			t.Name = snap.Record.Event
			t.Location = snap.Record.Site
		}
		t.Rounds = append(t.Rounds, feeddto.RoundSummary{Count: len(boards), Live: live})
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleRoundIndex(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round != servedRound {
		writeNotFound(w, fmt.Sprintf("round %s not found", chi.URLParam(r, "round")))
		return
	}

	idx := feeddto.RoundIndex{Pairings: []feeddto.Pairing{}}
	for _, b := range s.store.Boards() {
		snap, ok := s.store.Get(b)
		if !ok {
			continue
		}
		rec := snap.Record
		idx.Pairings = append(idx.Pairings, feeddto.Pairing{
			White:  feeddto.PlayerRef{Name: rec.White},
			Black:  feeddto.PlayerRef{Name: rec.Black},
			Result: rec.Result,
			Live:   !snap.Finished(),
		})
	}
	writeJSON(w, http.StatusOK, idx)
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round != servedRound {
		writeNotFound(w, fmt.Sprintf("round %s not found", chi.URLParam(r, "round")))
		return
	}
	board, err := strconv.Atoi(chi.URLParam(r, "board"))
	if err != nil || board <= 0 {
		writeNotFound(w, fmt.Sprintf("board %s not found", chi.URLParam(r, "board")))
		return
	}
	snap, ok := s.store.Get(board)
	if !ok {
		writeNotFound(w, fmt.Sprintf("board %d not found", board))
		return
	}

	rec := snap.Record
	state := feeddto.GameState{
		Moves:    append([]string{}, rec.MovesSAN...),
		Result:   rec.Result,
		Finished: snap.Finished(),
		White:    rec.White,
		Black:    rec.Black,
		Round:    rec.Round,
		Event:    rec.Event,
	}
	if !state.Finished {
		state.Clock = feeddto.Clock{White: runningClockCs, Black: runningClockCs}
	}

	w.Header().Set("ETag", fmt.Sprintf("%q", "v"+strconv.FormatUint(snap.Version, 10)))
	writeJSON(w, http.StatusOK, state)
}

// handleHealth succeeds regardless of simulation or filesystem state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, feeddto.Health{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obslog.L().Warn("encode response", zap.Error(err))
	}
}

func writeNotFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, feeddto.APIError{Error: msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		obslog.L().Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}
