package events

import (
	"github.com/Shopify/sarama"
	"go.uber.org/zap"
)

// DefaultTopic is the Kafka topic item change events are published to.
const DefaultTopic = "structured-data-event"

// AsyncProducer is a Publisher implementation for Kafka queues.
type AsyncProducer struct {
	producer       sarama.AsyncProducer
	logger         *zap.Logger
	topic          string
	reconnect      bool
	successActions []string
	failureActions []string
}

// Publish implements the Publisher interface.
func (ap *AsyncProducer) Publish(e Event) {
	if !ap.shouldPublish(e) {
		return
	}

	msg := sarama.ProducerMessage{
		Topic: ap.topic,
		Value: sarama.ByteEncoder(e.Yield()),
	}

	ap.producer.Input() <- &msg
}

// shouldPublish applies the configured action filters.
func (ap *AsyncProducer) shouldPublish(e Event) bool {
	actions := ap.failureActions
	if e.IsSuccessful() {
		actions = ap.successActions
	}
	return stringInSlice("*", actions) || stringInSlice(e.EventAction(), actions)
}

func stringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// Reconnect implements the Publisher interface.
func (ap *AsyncProducer) Reconnect() bool {
	return ap.reconnect
}

// Opt sets an option on an AsyncProducer.
type Opt func(*AsyncProducer)

// WithLogger sets a custom logger on an AsyncProducer.
func WithLogger(logger *zap.Logger) Opt {
	return func(ap *AsyncProducer) {
		ap.logger = logger
	}
}

// WithTopic sets the topic published to by an AsyncProducer.
func WithTopic(topic string) Opt {
	return func(ap *AsyncProducer) {
		ap.topic = topic
	}
}

// WithPublishActions sets success and failure actions that should be published on an AsyncProducer
func WithPublishActions(successActions []string, failureActions []string) Opt {
	return func(ap *AsyncProducer) {
		ap.successActions = successActions
		ap.failureActions = failureActions
	}
}

// NewAsyncProducer constructs an AsyncProducer with internal defaults and supplied options.
func NewAsyncProducer(brokerList []string, opts ...Opt) (*AsyncProducer, error) {
	producer, err := sarama.NewAsyncProducer(brokerList, nil)
	if err != nil {
		return nil, err
	}
	ap := AsyncProducer{producer: producer, topic: DefaultTopic, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&ap)
	}
	ap.start()
	return &ap, nil
}

func (ap *AsyncProducer) start() {
	go func() {
		defer func() { ap.reconnect = true }()
		for err := range ap.producer.Errors() {
			ap.logger.Error("kafka producer error", zap.Error(err))
			if requiresReconnect(err) {
				ap.reconnect = true
			}
		}
	}()
}

func requiresReconnect(err *sarama.ProducerError) bool {
	if v, ok := err.Err.(sarama.KError); ok {
		switch v {
		case sarama.ErrUnknown,
			sarama.ErrClosedClient,
			sarama.ErrUnknownTopicOrPartition,
			sarama.ErrBrokerNotAvailable,
			sarama.ErrNetworkException,
			sarama.ErrNotEnoughReplicas,
			sarama.ErrNotEnoughReplicasAfterAppend:
			return true
		}
	}
	return false
}
