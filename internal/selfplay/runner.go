package selfplay

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/protocol"
)

// ErrTooManyInvalid is returned when a chooser keeps proposing actions
// the engine rejects.
var ErrTooManyInvalid = errors.New("selfplay: too many invalid actions")

const defaultMaxInvalid = 100

// Config describes a batch of games.
type Config struct {
	Games      int
	Workers    int       // 0 = runtime.NumCPU()
	Seed       int64     // game i is played with seed Seed+i
	Players    [2]string // chooser names for FIRST and SECOND
	Rules      *game.Rules
	Catalog    *game.Catalog
	KeepStates bool // record every battle state seen by a chooser
	MaxInvalid int  // consecutive rejected actions before giving up, 0 = 100
	Logger     *zap.Logger
}

// Sample is a battle state as seen by the player to move, labelled with
// whether that player went on to win.
type Sample struct {
	Turn   int
	Player game.PlayerOrder
	State  string
	Won    bool
}

// Record is the outcome of one game.
type Record struct {
	Game     int
	Seed     int64
	Players  [2]string
	Winner   game.PlayerOrder
	Turns    int
	Result   string
	Checksum string
	Samples  []Sample
}

// Summary tallies a batch.
type Summary struct {
	Games int
	Wins  [2]int
	Draws int
}

// WinRate returns the share of games won by p.
func (s Summary) WinRate(p game.PlayerOrder) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins[p]) / float64(s.Games)
}

func (s *Summary) add(r *Record) {
	s.Games++
	if r.Winner == game.NoPlayer {
		s.Draws++
		return
	}
	s.Wins[r.Winner]++
}

// Play runs game number index of cfg to the end.
func Play(ctx context.Context, cfg Config, index int) (*Record, error) {
	seed := cfg.Seed + int64(index)
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s, err := game.NewState(game.Config{Seed: seed, Rules: cfg.Rules, Catalog: cfg.Catalog, Logger: logger})
	if err != nil {
		return nil, err
	}

	var seats [2]Chooser
	for i, name := range cfg.Players {
		c, err := New(name, uint64(seed)*2+uint64(i))
		if err != nil {
			return nil, err
		}
		seats[i] = c
	}

	samples, err := PlayState(ctx, s, seats, cfg.KeepStates, cfg.MaxInvalid)
	if err != nil {
		return nil, fmt.Errorf("selfplay: game %d: %w", index, err)
	}
	return &Record{
		Game:     index,
		Seed:     seed,
		Players:  cfg.Players,
		Winner:   s.Winner(),
		Turns:    s.Turn(),
		Result:   s.Result(),
		Checksum: s.Checksum(),
		Samples:  samples,
	}, nil
}

// PlayState drives s to the end with one chooser per seat. With
// keepStates it returns every battle state a chooser was asked about,
// labelled with the final winner. maxInvalid bounds consecutive rejected
// actions, 0 meaning 100.
func PlayState(ctx context.Context, s *game.State, seats [2]Chooser, keepStates bool, maxInvalid int) ([]Sample, error) {
	if maxInvalid == 0 {
		maxInvalid = defaultMaxInvalid
	}
	var samples []Sample
	invalid := 0
	for !s.Ended() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if keepStates && s.Phase() == game.PhaseBattle && !s.WasLastActionInvalid() {
			samples = append(samples, Sample{Turn: s.Turn(), Player: s.CurrentOrder(), State: protocol.Encode(s)})
		}
		current := s.CurrentOrder()
		a, err := seats[current].Choose(ctx, s, s.AvailableActions())
		if err != nil {
			return nil, fmt.Errorf("%s chooser: %w", current, err)
		}
		if err := s.Act(a); err != nil {
			invalid++
			if invalid >= maxInvalid {
				return nil, fmt.Errorf("%w: %s, last %s", ErrTooManyInvalid, current, a)
			}
			continue
		}
		invalid = 0
	}
	for i := range samples {
		samples[i].Won = samples[i].Player == s.Winner()
	}
	return samples, nil
}

// Run plays cfg.Games games on a pool of workers. Finished games are handed
// to sink one at a time, in completion order; sink may be nil. The first
// error from a game or from sink stops the batch.
func Run(ctx context.Context, cfg Config, sink func(*Record) error) (Summary, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan int, workers)
	output := make(chan *Record, workers)
	var played atomic.Int64

	g.Go(func() error {
		defer close(jobs)
		for i := range cfg.Games {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var pool sync.WaitGroup
	for range workers {
		pool.Add(1)
		g.Go(func() error {
			defer pool.Done()
			for i := range jobs {
				rec, err := Play(ctx, cfg, i)
				if err != nil {
					return err
				}
				played.Add(1)
				select {
				case output <- rec:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		pool.Wait()
		close(output)
	}()

	var sum Summary
	var sinkErr error
	for rec := range output {
		if sinkErr != nil {
			continue
		}
		sum.add(rec)
		logger.Debug("game finished",
			zap.Int("game", rec.Game),
			zap.Stringer("winner", rec.Winner),
			zap.Int("turns", rec.Turns),
			zap.Float64("first_win_rate", sum.WinRate(game.PlayerFirst)))
		if sink != nil {
			if err := sink(rec); err != nil {
				sinkErr = err
				cancel()
			}
		}
	}

	err := g.Wait()
	if sinkErr != nil {
		return sum, sinkErr
	}
	if err != nil {
		return sum, err
	}
	logger.Info("self-play finished",
		zap.Int64("games", played.Load()),
		zap.Int("first_wins", sum.Wins[game.PlayerFirst]),
		zap.Int("second_wins", sum.Wins[game.PlayerSecond]),
		zap.Int("draws", sum.Draws))
	return sum, nil
}
