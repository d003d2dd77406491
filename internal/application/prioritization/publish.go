package prioritization

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
	"github.com/turtacn/admet-prioritizer/pkg/types/common"
)

// Sink names used in publish metrics.
const (
	SinkObjectStore = "object_store"
	SinkEvents      = "events"
)

// uploadConcurrency bounds parallel depiction uploads.
const uploadConcurrency = 4

// ArtifactStore writes one object and returns its location.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// EventPublisher announces finished runs.
type EventPublisher interface {
	PublishRunCompleted(ctx context.Context, ev ctypes.RunCompletedEvent) error
}

// PublishResult lists what a Publish call wrote.
type PublishResult struct {
	ExportKey     string
	SummaryKey    string
	DepictionKeys []string
	EventSent     bool
}

// Publisher copies a finished run to object storage and emits its
// completion event.  Either sink may be nil.
type Publisher struct {
	store   ArtifactStore
	events  EventPublisher
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

func NewPublisher(store ArtifactStore, events EventPublisher, metrics *prometheus.AppMetrics, logger logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Publisher{store: store, events: events, metrics: metrics, logger: logger.Named("publisher")}
}

// Enabled reports whether any sink is configured.
func (p *Publisher) Enabled() bool { return p != nil && (p.store != nil || p.events != nil) }

// RunPrefix is the object key prefix of a run's artifacts.
func RunPrefix(id common.ID) string { return "runs/" + string(id) + "/" }

// DepictionKey is the object key of the depiction at position.
func DepictionKey(id common.ID, position int) string {
	return path.Join(RunPrefix(id), "depictions", fmt.Sprintf("%03d.png", position))
}

// Publish writes the export CSV, a JSON summary and every depiction, then
// emits the completion event.  The event is not sent if the upload fails.
func (p *Publisher) Publish(ctx context.Context, r *Report) (*PublishResult, error) {
	if r == nil {
		return nil, errors.InvalidParam("nothing to publish")
	}
	res := &PublishResult{}
	log := p.logger.With(logging.String("run_id", string(r.RunID)))

	if p.store != nil {
		start := time.Now()
		err := p.upload(ctx, r, res)
		p.record(SinkObjectStore, time.Since(start), err)
		if err != nil {
			log.Error("artifact upload failed", logging.Err(err))
			return res, err
		}
		log.Info("artifacts uploaded",
			logging.String("export_key", res.ExportKey),
			logging.Int("depictions", len(res.DepictionKeys)))
	}

	if p.events != nil {
		start := time.Now()
		err := p.events.PublishRunCompleted(ctx, RunCompletedEvent(r, res.ExportKey))
		p.record(SinkEvents, time.Since(start), err)
		if err != nil {
			log.Error("run event not published", logging.Err(err))
			return res, err
		}
		res.EventSent = true
	}
	return res, nil
}

func (p *Publisher) upload(ctx context.Context, r *Report, res *PublishResult) error {
	prefix := RunPrefix(r.RunID)

	csvData, err := ExportCSV(r)
	if err != nil {
		return err
	}
	exportKey := path.Join(prefix, ExportFileName)
	if _, err := p.store.Put(ctx, exportKey, csvData, "text/csv"); err != nil {
		return err
	}
	res.ExportKey = exportKey

	summary, err := json.MarshalIndent(r.ToResponse(nil, nil), "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode run summary")
	}
	summaryKey := path.Join(prefix, "summary.json")
	if _, err := p.store.Put(ctx, summaryKey, summary, "application/json"); err != nil {
		return err
	}
	res.SummaryKey = summaryKey

	gallery := r.Gallery()
	keys := make([]string, len(gallery))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, item := range gallery {
		i, item := i, item
		g.Go(func() error {
			key := DepictionKey(r.RunID, item.Position)
			if _, err := p.store.Put(gctx, key, item.PNG, "image/png"); err != nil {
				return err
			}
			keys[i] = key
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	res.DepictionKeys = keys
	return nil
}

func (p *Publisher) record(sink string, d time.Duration, err error) {
	if p.metrics != nil {
		p.metrics.RecordPublish(sink, d, err)
	}
}

// RunCompletedEvent summarizes r for the event stream.
func RunCompletedEvent(r *Report, exportKey string) ctypes.RunCompletedEvent {
	return ctypes.RunCompletedEvent{
		EventID:    string(common.NewID()),
		RunID:      r.RunID,
		Source:     r.Source,
		Total:      len(r.Candidates),
		Passed:     r.PassCount(),
		Failed:     r.FailCount(),
		Invalid:    r.InvalidCount(),
		TopRanked:  r.TopRanked(3),
		ExportKey:  exportKey,
		OccurredAt: common.Timestamp(time.Now().UTC()),
	}
}

//Personal.AI order the ending
