package config

import (
	"fmt"
	"net"
	"strconv"

	"sharyat/utils"

	"github.com/segmentio/kafka-go"
)

// CreateNotificationTopic makes sure the push notification topic exists
// before the first producer or consumer connects.
func CreateNotificationTopic() error {
	broker := Env().KafkaBroker
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	topic := Env().NotificationTopic

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
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
		ConfigEntries: []kafka.ConfigEntry{
			// 2 days retention; undelivered pushes older than that are stale anyway
			{
				ConfigName:  "retention.ms",
				ConfigValue: "172800000",
			},
		},
	}

	return controllerConn.CreateTopics(topicConfig)
}

func GetNotificationWriter() (*kafka.Writer, error) {
	broker := Env().KafkaBroker
	if broker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers: []string{broker},
		Topic:   Env().NotificationTopic,
	}), nil
}

func GetNotificationReader() (*kafka.Reader, error) {
	broker := Env().KafkaBroker
	if broker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	err := CreateNotificationTopic()
	if err != nil {
		return nil, err
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       Env().NotificationTopic,
		GroupID:     Env().NotificationGroupId,
		StartOffset: kafka.FirstOffset,
	}), nil
}
