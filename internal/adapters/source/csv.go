// Package source reads position samples from the CSV written by the video
// pipeline.
package source

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/model"
)

// Column names of the input file.
const (
	ColX           = "x"
	ColY           = "y"
	ColMillisecond = "millisecond"
	ColMinute      = "minute"
	ColZone        = "zone_played"
)

// Required lists the columns every input file must carry. Order in the file
// does not matter and extra columns are ignored.
var Required = []string{ColX, ColY, ColMillisecond, ColMinute, ColZone}

const ctxCheckEvery = 4096

// Load reads all samples from the CSV file at path.
func Load(ctx context.Context, path string) ([]model.PositionSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "open %s", path), ErrOpen)
	}
	defer func() { _ = f.Close() }()
	return Read(ctx, bufio.NewReader(f))
}

// Read parses samples from r. Malformed input yields a *model.InvalidInputError
// naming the offending row (1-based, header included) and column.
func Read(ctx context.Context, r io.Reader) ([]model.PositionSample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, model.NewInvalidInput("", 1, "missing header")
	}
	if err != nil {
		return nil, model.NewInvalidInput("", 1, err.Error())
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}
	// Extra columns may make records wider than the header on some rows.
	cr.FieldsPerRecord = -1

	var samples []model.PositionSample
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, model.NewInvalidInput("", row, err.Error())
		}
		if row%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		s, err := parseRecord(rec, idx, row)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

type columns struct {
	x, y, ms, minute, zone int
}

func columnIndex(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	for _, name := range Required {
		if _, ok := pos[name]; !ok {
			return columns{}, model.NewInvalidInput(name, 0, "required column missing")
		}
	}
	return columns{
		x:      pos[ColX],
		y:      pos[ColY],
		ms:     pos[ColMillisecond],
		minute: pos[ColMinute],
		zone:   pos[ColZone],
	}, nil
}

func parseRecord(rec []string, idx columns, row int) (model.PositionSample, error) {
	field := func(i int) string {
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	x, err := parseCoord(field(idx.x))
	if err != nil {
		return model.PositionSample{}, model.NewInvalidInput(ColX, row, err.Error())
	}
	y, err := parseCoord(field(idx.y))
	if err != nil {
		return model.PositionSample{}, model.NewInvalidInput(ColY, row, err.Error())
	}
	ms, err := parseIntegral(field(idx.ms))
	if err != nil {
		return model.PositionSample{}, model.NewInvalidInput(ColMillisecond, row, err.Error())
	}
	if ms < 0 {
		return model.PositionSample{}, model.NewInvalidInput(ColMillisecond, row, "negative timestamp")
	}
	minute, err := parseIntegral(field(idx.minute))
	if err != nil {
		return model.PositionSample{}, model.NewInvalidInput(ColMinute, row, err.Error())
	}
	if minute < 0 {
		return model.PositionSample{}, model.NewInvalidInput(ColMinute, row, "negative minute")
	}
	if minute > model.MaxMinute {
		return model.PositionSample{}, model.NewInvalidInput(ColMinute, row, "minute beyond "+strconv.Itoa(model.MaxMinute))
	}
	if int(minute) != model.MinuteOf(ms) {
		return model.PositionSample{}, model.NewInvalidInput(ColMinute, row, "minute does not match millisecond")
	}
	zone := model.Zone(strings.ToLower(field(idx.zone)))
	if !zone.Valid() {
		return model.PositionSample{}, model.NewInvalidInput(ColZone, row, "unknown zone "+strconv.Quote(field(idx.zone)))
	}

	return model.PositionSample{X: x, Y: y, Millisecond: ms, Minute: int(minute), Zone: zone}, nil
}

func parseCoord(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Newf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Newf("not a finite number: %q", s)
	}
	return v, nil
}

// parseIntegral accepts "1200" as well as "1200.0", which pandas writes for
// integer columns that once held a missing value.
func parseIntegral(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Newf("not an integer: %q", s)
	}
	if f != math.Trunc(f) {
		return 0, errors.Newf("not an integer: %q", s)
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, errors.Newf("out of range: %q", s)
	}
	return int64(f), nil
}
