package producer

import (
	"encoding/binary"
	"hash"

	"github.com/Shopify/sarama"
)

// NewJVMCompatiblePartitioner creates a partitioner that places keyed
// records on the same partitions as the default partitioner of the JVM
// Kafka clients, which hashes keys with murmur2. Use it whenever Go
// and JVM producers write keyed records to the same topics.
func NewJVMCompatiblePartitioner(topic string) sarama.Partitioner {
	return sarama.NewCustomHashPartitioner(newMurmur2Hash)(topic)
}

// murmur2Hash adapts murmur2 to hash.Hash32 for
// sarama.NewCustomHashPartitioner. Sarama hashes a key with a single
// Write call, so the streaming half of the interface stays trivial.
type murmur2Hash struct {
	sum int32
}

func newMurmur2Hash() hash.Hash32 {
	return new(murmur2Hash)
}

func (h *murmur2Hash) Write(p []byte) (int, error) {
	h.sum = murmur2(p)
	return len(p), nil
}

func (h *murmur2Hash) Sum(b []byte) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], h.Sum32())
	return append(b, buf[:]...)
}

// Sum32 masks the sign bit the way the JVM client does before taking
// the hash modulo the partition count.
func (h *murmur2Hash) Sum32() uint32 {
	return uint32(h.sum & 0x7fffffff)
}

func (h *murmur2Hash) Reset()         { h.sum = 0 }
func (h *murmur2Hash) Size() int      { return 4 }
func (h *murmur2Hash) BlockSize() int { return 4 }

// murmur2 mirrors org.apache.kafka.common.utils.Utils.murmur2,
// including its signed 32-bit overflow behavior.
func murmur2(data []byte) int32 {
	const (
		seed = int32(-1756908916) // 0x9747b28c
		m    = int32(0x5bd1e995)
		r    = 24
	)

	n := len(data)
	h := seed ^ int32(n)

	i := 0
	for ; i+4 <= n; i += 4 {
		k := int32(data[i]) | int32(data[i+1])<<8 | int32(data[i+2])<<16 | int32(data[i+3])<<24
		k *= m
		k ^= int32(uint32(k) >> r)
		k *= m
		h *= m
		h ^= k
	}

	switch n - i {
	case 3:
		h ^= int32(data[i+2]) << 16
		fallthrough
	case 2:
		h ^= int32(data[i+1]) << 8
		fallthrough
	case 1:
		h ^= int32(data[i])
		h *= m
	}

	h ^= int32(uint32(h) >> 13)
	h *= m
	h ^= int32(uint32(h) >> 15)

	return h
}
