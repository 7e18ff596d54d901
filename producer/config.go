package producer

import (
	"github.com/Shopify/sarama"

	"github.com/ventoux/partita/codec"
)

// Config is used to configure the Producer.
type Config struct {
	sarama.Config

	// ValueCodec encodes the values handed to Send. Defaults to the
	// JSON codec.
	ValueCodec codec.Codec
}

// NewConfig creates a config with sane defaults.
func NewConfig(clientID string) Config {
	config := sarama.NewConfig()
	config.Version = sarama.V1_0_0_0
	config.ClientID = clientID
	config.Producer.RequiredAcks = sarama.WaitForAll // Wait for all in-sync replicas to ack the record
	config.Producer.Retry.Max = 3                    // Retry up to 3 times to produce the record
	// required for the SyncProducer, see https://godoc.org/github.com/Shopify/sarama#SyncProducer
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	// Agree with JVM producers on where keyed records land.
	config.Producer.Partitioner = NewJVMCompatiblePartitioner

	return Config{
		Config:     *config,
		ValueCodec: codec.JSON(),
	}
}
