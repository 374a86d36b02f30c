package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/resqride/resqride/core/metrics"
	"github.com/resqride/resqride/infra/logger"
)

// InfluxSink writes dispatch telemetry to an InfluxDB instance using the
// official client. Position samples become a per-vehicle track time series.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSessionOutcome writes the terminal session event.
func (s *InfluxSink) RecordSessionOutcome(o coremetrics.SessionOutcome) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("dispatch_session").
		AddTag("session_id", o.SessionID.String()).
		AddTag("vehicle_id", strconv.Itoa(o.VehicleID)).
		AddTag("outcome", string(o.Outcome)).
		AddField("elapsed_s", o.Elapsed.Seconds()).
		AddField("reason", o.Reason).
		SetTime(o.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPositionSample writes one point of the vehicle track.
func (s *InfluxSink) RecordPositionSample(sample coremetrics.PositionSample) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("vehicle_position").
		AddTag("session_id", sample.SessionID.String()).
		AddTag("vehicle_id", strconv.Itoa(sample.VehicleID)).
		AddField("lat", sample.Position.Lat).
		AddField("lon", sample.Position.Lon).
		AddField("remaining_s", sample.Remaining.Seconds()).
		AddField("cursor", sample.Cursor).
		SetTime(sample.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
