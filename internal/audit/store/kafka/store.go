// Package kafka publishes audit records to a Kafka topic instead of a
// database. Records are keyed by entity id so every audit of one claim or
// cover lands on the same partition, in the order the processor wrote it.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"claims/internal/audit"
)

// Config describes the Kafka audit sink.
type Config struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
}

// Store produces audit records synchronously, one record per call.
type Store struct {
	client *kgo.Client
	cfg    Config
}

// New connects a producer for cfg.Topic.
func New(cfg Config) (*Store, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka audit store requires at least one broker")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka audit store requires a topic")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Store{client: client, cfg: cfg}, nil
}

// EnsureTopic creates the audit topic if it does not exist yet.
func (s *Store) EnsureTopic(ctx context.Context) error {
	partitions, replicationFactor := s.cfg.Partitions, s.cfg.ReplicationFactor
	if partitions <= 0 {
		partitions = 1
	}
	if replicationFactor <= 0 {
		replicationFactor = 1
	}
	adm := kadm.NewClient(s.client)
	resp, err := adm.CreateTopic(ctx, partitions, replicationFactor, nil, s.cfg.Topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", s.cfg.Topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", s.cfg.Topic, resp.Err)
	}
	return nil
}

// Payload is the JSON value written for each audit record.
type Payload struct {
	EntityType      string `json:"entity_type"`
	EntityID        string `json:"entity_id"`
	HTTPRequestType string `json:"http_request_type"`
	Created         string `json:"created"`
}

// Encode builds the Kafka record for an audit.
func Encode(record audit.Record) (*kgo.Record, error) {
	value, err := json.Marshal(Payload{
		EntityType:      string(record.EntityType),
		EntityID:        record.EntityID,
		HTTPRequestType: record.HTTPMethod,
		Created:         record.Created.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal audit payload: %w", err)
	}
	return &kgo.Record{
		Key:   []byte(record.EntityID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "entity_type", Value: []byte(record.EntityType)},
		},
	}, nil
}

// Decode parses a record produced by Encode.
func Decode(r *kgo.Record) (audit.Record, error) {
	var p Payload
	if err := json.Unmarshal(r.Value, &p); err != nil {
		return audit.Record{}, fmt.Errorf("unmarshal audit payload: %w", err)
	}
	created, err := time.Parse(time.RFC3339Nano, p.Created)
	if err != nil {
		return audit.Record{}, fmt.Errorf("parse audit timestamp: %w", err)
	}
	return audit.Record{
		EntityType: audit.EntityType(p.EntityType),
		EntityID:   p.EntityID,
		HTTPMethod: p.HTTPRequestType,
		Created:    created,
	}, nil
}

// PersistAudit produces the record and waits for the broker acknowledgement.
func (s *Store) PersistAudit(ctx context.Context, record audit.Record) error {
	if !record.EntityType.Valid() {
		return fmt.Errorf("unknown audit entity type %q", record.EntityType)
	}
	rec, err := Encode(record)
	if err != nil {
		return err
	}
	if err := s.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce %s audit: %w", record.EntityType, err)
	}
	return nil
}

// Close flushes buffered records and closes the client.
func (s *Store) Close() {
	s.client.Close()
}
