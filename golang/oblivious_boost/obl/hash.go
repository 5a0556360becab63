package obl

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

//Base constants that separate the hash spaces of different split kinds.
//Cached hashes depend on them.
const (
	FloatFeatureBaseHash  uint64 = 12321
	CtrBaseHash           uint64 = 89321
	OneHotFeatureBaseHash uint64 = 517931

	BinarySplitsPackHash uint64 = 118223
	ExclusiveBundleHash  uint64 = 981490
)

//multiHash combines values in order. Swapping two arguments changes the result.
func multiHash(values ...uint64) uint64 {
	digest := xxhash.New()
	var word [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(word[:], v)
		_, _ = digest.Write(word[:])
	}
	return digest.Sum64()
}

func intWord(v int) uint64 {
	return uint64(int64(v))
}

func appendWord(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}
