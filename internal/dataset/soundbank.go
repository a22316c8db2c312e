package dataset

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"path"

	"github.com/crysense/soundforge/internal/mix"
	"github.com/crysense/soundforge/internal/storage"
	"github.com/crysense/soundforge/internal/synth"
	"github.com/crysense/soundforge/internal/wavio"
)

// BackgroundLabel is the label directory for ambience backgrounds.
const BackgroundLabel = "ambience"

// SoundbankParams configures a soundbank build.
type SoundbankParams struct {
	SampleRate     int
	NumBackgrounds int
	BgDurationSec  float64
	NumVariants    int
	// PeakTarget is applied to every standalone buffer before writing.
	PeakTarget float64
}

// SoundbankService batch-generates standalone labeled files for an
// external statistical-mixture tool: a backgrounds/<label> tree and an
// events/<label> tree, one subdirectory per semantic label. It reuses
// the signal generators directly; the only composition step is
// normalization before writing. No SNR or placement logic applies.
type SoundbankService struct {
	sink   storage.Sink
	logger *slog.Logger
	params SoundbankParams
}

// NewSoundbankService creates a SoundbankService.
func NewSoundbankService(sink storage.Sink, logger *slog.Logger, params SoundbankParams) *SoundbankService {
	if logger == nil {
		logger = slog.Default()
	}
	if params.PeakTarget <= 0 {
		params.PeakTarget = 0.9
	}
	return &SoundbankService{sink: sink, logger: logger, params: params}
}

// Build writes the full soundbank tree. Backgrounds come first, then one
// variant of every event label per round, so the draw order for a given
// seed is stable.
func (s *SoundbankService) Build(ctx context.Context, rng *rand.Rand) (*Report, error) {
	p := s.params
	s.logger.Info("building soundbank",
		slog.Int("backgrounds", p.NumBackgrounds),
		slog.Float64("bg_duration_sec", p.BgDurationSec),
		slog.Int("variants", p.NumVariants),
	)

	report := &Report{}
	index := 0

	for i := 0; i < p.NumBackgrounds; i++ {
		buf := synth.Background(rng, p.SampleRate, p.BgDurationSec)
		rel := path.Join("backgrounds", BackgroundLabel, fmt.Sprintf("bg_%03d.wav", i))
		s.writeItem(ctx, report, &index, rel, buf)
	}

	for i := 0; i < p.NumVariants; i++ {
		for _, kind := range synth.EventKinds() {
			spec := drawSoundbankSpec(rng, kind)
			buf := spec.Render(rng, p.SampleRate)
			rel := path.Join("events", string(kind), fmt.Sprintf("%s_%03d.wav", kind, i))
			s.writeItem(ctx, report, &index, rel, buf)
		}
	}

	s.logger.Info("soundbank complete",
		slog.Int("completed", report.Completed()),
		slog.Int("failed", report.Failed()),
	)
	return report, nil
}

// drawSoundbankSpec samples standalone-event parameters. Durations are
// tighter than in mixtures: soundbank consumers cut their own excerpts.
func drawSoundbankSpec(rng *rand.Rand, kind synth.Kind) synth.Spec {
	s := synth.Spec{Kind: kind}
	switch kind {
	case synth.KindClick:
		s.DurationSec = synth.ClickDuration
	case synth.KindBeep:
		s.DurationSec = 0.4 + 0.2*rng.Float64()
		s.Freq = 600 + 800*rng.Float64()
	case synth.KindChime:
		s.DurationSec = 0.8 + 0.4*rng.Float64()
	case synth.KindWhoosh:
		s.DurationSec = 0.5 + 0.5*rng.Float64()
	case synth.KindKnock:
		s.DurationSec = 0.4 + 0.4*rng.Float64()
		s.Freq = 80 + 120*rng.Float64()
	}
	return s
}

func (s *SoundbankService) writeItem(ctx context.Context, report *Report, index *int, rel string, buf []float64) {
	mix.Normalize(buf, s.params.PeakTarget)

	item := Item{Index: *index, Path: rel}
	*index++

	data, err := wavio.Marshal(buf, s.params.SampleRate)
	if err == nil {
		err = s.sink.Put(ctx, rel, bytes.NewReader(data))
	}
	if err != nil {
		s.logger.Warn("failed to write soundbank file",
			slog.String("path", rel),
			slog.String("error", err.Error()),
		)
		item.Status = StatusFailed
		item.Error = err.Error()
	} else {
		item.Status = StatusCompleted
	}
	report.Add(item)
}
