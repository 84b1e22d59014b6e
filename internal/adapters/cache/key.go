package cache

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/okian/futvis/internal/domain/model"
)

// Key builds a content address for a computation: the dataset it ran on, the
// function (with its parameters) and a hash of the exact input subset.
func Key(dataset, function string, samples []model.PositionSample) string {
	return dataset + "/" + function + "/" + strconv.FormatUint(Fingerprint(samples), 16)
}

// Fingerprint hashes every field of every sample in order.
func Fingerprint(samples []model.PositionSample) uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	put(uint64(len(samples)))
	for _, s := range samples {
		put(math.Float64bits(s.X))
		put(math.Float64bits(s.Y))
		put(uint64(s.Millisecond))
		put(uint64(s.Minute))
		_, _ = d.WriteString(string(s.Zone))
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
