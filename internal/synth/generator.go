// Package synth generates synthetic position datasets in the video
// pipeline's CSV format and smoke-checks a running dashboard against them.
package synth

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/adapters/source"
	"github.com/okian/futvis/internal/domain/model"
	"github.com/okian/futvis/pkg/logger"
)

// ErrInvalidConfig is returned for configurations that cannot produce a dataset.
var ErrInvalidConfig = errors.New("invalid generator config")

type player struct {
	home model.Point
	pos  model.Point
}

// Generator writes a random walk of players around their home positions.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator validates cfg and seeds the walk. A zero seed is derived from runID.
func NewGenerator(cfg Config, runID string) (*Generator, error) {
	if cfg.Minutes <= 0 || cfg.Minutes > model.MaxMinute || cfg.Players <= 0 || cfg.FrameStep <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "minutes=%d players=%d step=%s", cfg.Minutes, cfg.Players, cfg.FrameStep)
	}
	if cfg.Dropout < 0 || cfg.Dropout >= 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "dropout %.2f not in [0,1)", cfg.Dropout)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = xxhash.Sum64String(runID)
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewPCG(seed, seed>>1|1))}, nil
}

// Write emits the header and every frame to w and returns the number of rows.
func (g *Generator) Write(ctx context.Context, w io.Writer) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(source.Required); err != nil {
		return 0, errors.Wrap(err, "write header")
	}

	players := g.lineUp()
	end := time.Duration(g.cfg.Minutes) * time.Minute
	rows := 0
	rec := make([]string, len(source.Required))
	for at := time.Duration(0); at < end; at += g.cfg.FrameStep {
		if err := ctx.Err(); err != nil {
			return rows, err
		}
		ms := at.Milliseconds()
		if ms%model.MillisPerMinute == 0 {
			g.drift(players)
		}
		for i := range players {
			g.step(&players[i])
			if g.rng.Float64() < g.cfg.Dropout {
				continue
			}
			p := model.Point{X: round2(players[i].pos.X), Y: round2(players[i].pos.Y)}
			// CSV x is across the width and y along the length.
			rec[0] = formatCoord(p.Y)
			rec[1] = formatCoord(p.X)
			rec[2] = strconv.FormatInt(ms, 10)
			rec[3] = strconv.Itoa(model.MinuteOf(ms))
			rec[4] = string(ZoneOf(p.X))
			if err := cw.Write(rec); err != nil {
				return rows, errors.Wrapf(err, "write row %d", rows+2)
			}
			rows++
		}
	}
	cw.Flush()
	return rows, errors.Wrap(cw.Error(), "flush csv")
}

// WriteFile writes the dataset to path, creating parent directories.
func (g *Generator) WriteFile(ctx context.Context, path string) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return 0, errors.Wrap(err, "create directory")
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrap(err, "create file")
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()
	return g.Write(ctx, f)
}

// ZoneOf classifies a position along the pitch length into its third.
func ZoneOf(length float64) model.Zone {
	switch {
	case length < model.PitchLength/3:
		return model.ZoneDefensive
	case length < 2*model.PitchLength/3:
		return model.ZoneMiddle
	}
	return model.ZoneAttacking
}

// lineUp spreads home positions over rows of the pitch, one line per four players.
func (g *Generator) lineUp() []player {
	players := make([]player, g.cfg.Players)
	lines := (g.cfg.Players + 3) / 4
	for i := range players {
		line, slot := i/4, i%4
		home := model.Point{
			X: model.PitchLength * (float64(line) + 0.5) / float64(lines),
			Y: model.PitchWidth * (float64(slot) + 0.5) / 4,
		}
		players[i] = player{home: home, pos: home}
	}
	return players
}

// drift moves every home a little at each minute boundary so the
// occupancy changes across the match.
func (g *Generator) drift(players []player) {
	dx := (g.rng.Float64()*2 - 1) * minuteDriftMax
	for i := range players {
		players[i].home.X = clamp(players[i].home.X+dx, 0, model.PitchLength)
	}
}

func (g *Generator) step(p *player) {
	p.pos.X += g.rng.NormFloat64()*stepStdDev + (p.home.X-p.pos.X)*homePull
	p.pos.Y += g.rng.NormFloat64()*stepStdDev + (p.home.Y-p.pos.Y)*homePull
	p.pos.X = clamp(p.pos.X, 0, model.PitchLength)
	p.pos.Y = clamp(p.pos.Y, 0, model.PitchWidth)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
