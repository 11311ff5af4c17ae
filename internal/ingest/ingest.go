// Package ingest consumes floor-gateway telemetry over MQTT and persists it
// as machine log rows. It also watches the Machine_Status tag and hands
// stopped-machine transitions to the alert worker pool.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"factory-ops-backend/config"
	"factory-ops-backend/internal/model"
	"factory-ops-backend/internal/parse"
	"factory-ops-backend/internal/timeline"
)

// Store is the slice of persistence the ingest service needs.
type Store interface {
	InsertMachineLogs(ctx context.Context, rows []model.MachineLog) error
}

// AlertDispatcher receives machine names whose status transitioned to stopped.
type AlertDispatcher interface {
	Dispatch(machineName string)
}

// gatewayPayload is the message shape the floor gateways publish on
// "<machine_id>/data": a batch of tag samples under one device timestamp.
type gatewayPayload struct {
	Timestamp string       `json:"ts"`
	Data      []gatewayTag `json:"d"`
}

type gatewayTag struct {
	Tag   string `json:"tag"`
	Value any    `json:"value"`
}

// Service subscribes to gateway telemetry and persists it.
type Service struct {
	cfg      *config.Config
	store    Store
	alerts   AlertDispatcher
	classify timeline.Classifier
	log      *logrus.Logger

	mu         sync.Mutex
	lastStatus map[string]timeline.Status
}

// NewService creates and initializes a new ingest service.
func NewService(cfg *config.Config, s Store, alerts AlertDispatcher, log *logrus.Logger) *Service {
	return &Service{
		cfg:    cfg,
		store:  s,
		alerts: alerts,
		classify: timeline.NewClassifier(
			cfg.Timeline.StateRunningValues,
			cfg.Timeline.StateStandbyValues,
			cfg.Timeline.StateStoppedValues,
		),
		log:        log,
		lastStatus: make(map[string]timeline.Status),
	}
}

// Run connects to the broker and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if !s.cfg.Ingest.Enabled {
		s.log.Info("Telemetry ingest is disabled. Not starting.")
		return nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(s.cfg.Ingest.Broker).
		SetClientID(s.cfg.Ingest.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect failed: %w", token.Error())
	}
	s.log.WithField("broker", s.cfg.Ingest.Broker).Info("Connected to MQTT broker")

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		if err := s.HandleMessage(ctx, msg.Topic(), msg.Payload()); err != nil {
			// A bad message is dropped, never fatal.
			s.log.WithError(err).WithField("topic", msg.Topic()).Warn("Telemetry message rejected")
		}
	}
	if token := client.Subscribe(s.cfg.Ingest.Topic, s.cfg.Ingest.QoS, handler); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return fmt.Errorf("mqtt subscribe failed: %w", token.Error())
	}
	s.log.WithField("topic", s.cfg.Ingest.Topic).Info("Telemetry ingest running")

	<-ctx.Done()
	client.Disconnect(250)
	s.log.Info("Telemetry ingest shut down")
	return nil
}

// HandleMessage parses one gateway message and stores its tag samples.
func (s *Service) HandleMessage(ctx context.Context, topic string, payload []byte) error {
	machineID, err := parse.MachineTopic(topic)
	if err != nil {
		return err
	}

	var msg gatewayPayload
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("malformed payload on %s: %w", topic, err)
	}
	if len(msg.Data) == 0 {
		return nil
	}

	rows := make([]model.MachineLog, 0, len(msg.Data))
	for _, item := range msg.Data {
		rows = append(rows, model.MachineLog{
			MachineID:  machineID,
			TagName:    item.Tag,
			TagValue:   tagValueString(item.Value),
			RecordedAt: msg.Timestamp,
		})
	}

	if err := s.store.InsertMachineLogs(ctx, rows); err != nil {
		return fmt.Errorf("failed to store %d tags for %s: %w", len(rows), machineID, err)
	}
	s.log.WithFields(logrus.Fields{"machine": machineID, "tags": len(rows)}).Debug("Stored telemetry batch")

	for _, item := range msg.Data {
		if item.Tag == model.TagMachineStatus {
			s.trackStatus(machineID, tagValueString(item.Value))
		}
	}
	return nil
}

// trackStatus classifies a status sample and dispatches a stop alert on the
// transition into stopped. The first sample seen after startup never alerts:
// there is no known prior state to transition from.
func (s *Service) trackStatus(machineID, value string) {
	code, err := strconv.ParseFloat(value, 64)
	if err != nil {
		s.log.WithFields(logrus.Fields{"machine": machineID, "value": value}).
			Warn("Unparsable status code")
		return
	}
	status := s.classify(code)

	s.mu.Lock()
	prev, seen := s.lastStatus[machineID]
	s.lastStatus[machineID] = status
	s.mu.Unlock()

	if seen && prev != timeline.StatusStopped && status == timeline.StatusStopped && s.alerts != nil {
		s.log.WithField("machine", machineID).Info("Machine stopped, dispatching alert")
		s.alerts.Dispatch(machineID)
	}
}

// tagValueString renders a JSON tag value the way the gateway sent it.
// Numeric values keep their compact decimal form.
func tagValueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
