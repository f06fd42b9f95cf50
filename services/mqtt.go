package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"cityflow/datagen/config"
	"cityflow/datagen/models"
	"cityflow/datagen/pipeline"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TrafficPayload is the message shape the traffic collector consumes.
type TrafficPayload struct {
	TS        string  `json:"ts"`
	SensorID  string  `json:"sensor_id"`
	RoadID    string  `json:"road_id"`
	SpeedKMH  float64 `json:"speed_kmh"`
	FlowRate  float64 `json:"flow_rate"`
	Occupancy float64 `json:"occupancy"`
}

var occupancyByCongestion = map[models.CongestionLevel]float64{
	models.CongestionLow:    0.15,
	models.CongestionMedium: 0.45,
	models.CongestionHigh:   0.8,
}

// NewTrafficPayload converts a 5-minute reading. Flow is vehicles per hour.
func NewTrafficPayload(r models.TrafficReading) TrafficPayload {
	return TrafficPayload{
		TS:        r.Timestamp.UTC().Format(time.RFC3339),
		SensorID:  r.SensorID,
		RoadID:    RoadID(r.RoadType, r.SensorID),
		SpeedKMH:  r.AvgSpeed,
		FlowRate:  float64(r.VehicleCount * 12),
		Occupancy: occupancyByCongestion[r.CongestionLevel],
	}
}

// RoadID names the road a sensor sits on, e.g. HIGHWAY-007 for TRAFFIC_007.
func RoadID(roadType, sensorID string) string {
	seq := sensorID
	if i := strings.LastIndexByte(sensorID, '_'); i >= 0 {
		seq = sensorID[i+1:]
	}
	return strings.ToUpper(roadType) + "-" + seq
}

// TrafficReplayer publishes generated traffic readings to the broker the
// collector subscribes to, one topic per sensor.
type TrafficReplayer struct {
	client mqtt.Client
	prefix string
	qos    byte
	log    *zap.Logger
}

func NewTrafficReplayer(cfg config.MQTTConfig, log *zap.Logger) (*TrafficReplayer, error) {
	if cfg.URL == "" {
		return nil, pipeline.Missing("mqtt broker", "set MQTT_URL or [mqtt] url", nil)
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.URL)
	opts.SetClientID(cfg.ClientID + "-" + time.Now().Format("20060102150405"))
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Warn("mqtt connection lost", zap.Error(err))
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(15 * time.Second) {
		client.Disconnect(0)
		return nil, pipeline.Missing("mqtt broker", "start the broker at "+cfg.URL, errors.New("connect timed out"))
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return nil, pipeline.Missing("mqtt broker", "start the broker at "+cfg.URL, err)
	}
	log.Info("mqtt connected", zap.String("broker", cfg.URL))
	return &TrafficReplayer{client: client, prefix: cfg.TopicPrefix, qos: byte(cfg.QoS), log: log}, nil
}

func (p *TrafficReplayer) Name() string { return "mqtt" }

func (p *TrafficReplayer) Export(ctx context.Context, t pipeline.Table) error {
	if t.Name != models.TrafficDataset {
		return nil
	}
	for i, row := range t.Rows {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		r, ok := row.(models.TrafficReading)
		if !ok {
			return errors.Errorf("row %d is %T, not a traffic reading", i, row)
		}
		data, err := json.Marshal(NewTrafficPayload(r))
		if err != nil {
			return errors.Wrap(err, "encode traffic payload")
		}
		token := p.client.Publish(TrafficTopic(p.prefix, r.SensorID), p.qos, false, data)
		if !token.WaitTimeout(5 * time.Second) {
			return errors.Errorf("publish %s timed out", r.SensorID)
		}
		if err := token.Error(); err != nil {
			return errors.Wrapf(err, "publish %s", r.SensorID)
		}
	}
	p.log.Info("replayed traffic readings", zap.Int("messages", len(t.Rows)))
	return nil
}

func (p *TrafficReplayer) Close() error {
	p.client.Disconnect(250)
	return nil
}

func TrafficTopic(prefix, sensorID string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + sensorID
}
