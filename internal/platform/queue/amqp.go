package queue

import (
	"fmt"

	"coursework_tracker/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	AMQPConn    *amqp.Connection
	AMQPChannel *amqp.Channel
)

// ConnectAMQP dials the broker and declares the durable runner queue.
func ConnectAMQP(url, queueName string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("could not connect to AMQP broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("could not open AMQP channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("could not declare queue %s: %w", queueName, err)
	}
	AMQPConn, AMQPChannel = conn, ch
	logger.NewNamedLogger("queue").Infof("Connected to AMQP broker, queue %s declared", queueName)
	return nil
}

func CloseAMQP() {
	if AMQPChannel != nil {
		AMQPChannel.Close()
	}
	if AMQPConn != nil {
		AMQPConn.Close()
		logger.NewNamedLogger("queue").Info("AMQP connection closed")
	}
}
