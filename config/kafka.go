package config

import (
	"fmt"
	"gatherpass/utils"
	"net"
	"strconv"

	"github.com/segmentio/kafka-go"
)

const pointEventTopic = "point-events"

func CreatePointEventTopic() error {
	broker := Env().KafkaBroker
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER environment variable not set")
	}

	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return err
	}
	defer utils.Closer(conn)()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer utils.Closer(controllerConn)()

	topicConfig := kafka.TopicConfig{
		Topic:             pointEventTopic,
		NumPartitions:     1,
		ReplicationFactor: 1,
		ConfigEntries: []kafka.ConfigEntry{
			{
				ConfigName:  "compression.type",
				ConfigValue: "zstd",
			},
			// 7 days retention
			{
				ConfigName:  "retention.ms",
				ConfigValue: "604800000",
			},
		},
	}

	return controllerConn.CreateTopics(topicConfig)
}

func GetPointEventWriter() (*kafka.Writer, error) {
	broker := Env().KafkaBroker
	if broker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers:          []string{broker},
		Topic:            pointEventTopic,
		CompressionCodec: kafka.Zstd.Codec(),
	}), nil
}

func GetPointEventReader(consumerId string) (*kafka.Reader, error) {
	broker := Env().KafkaBroker
	if broker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	err := CreatePointEventTopic()
	if err != nil {
		return nil, err
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       pointEventTopic,
		GroupID:     fmt.Sprintf("%s-%s", pointEventTopic, consumerId),
		StartOffset: kafka.LastOffset,
	}), nil
}
