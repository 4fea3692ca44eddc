package normalize

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/tsawler/labscan/model"
)

// Normalizer runs the decoding strategies. The zero configuration from New is
// ready to use; a Normalizer is safe for concurrent use once built.
type Normalizer struct {
	logger   zerolog.Logger
	patterns []LinePattern
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger used for strategy debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// WithPatterns replaces the line patterns used by the line strategy.
func WithPatterns(patterns []LinePattern) Option {
	return func(n *Normalizer) {
		n.patterns = append([]LinePattern(nil), patterns...)
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		logger:   zerolog.Nop(),
		patterns: DefaultPatterns(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize decodes raw into records shaped by p. The result is never nil;
// an empty slice means no strategy understood the answer.
func (n *Normalizer) Normalize(raw string, p Profile) []model.Record {
	text := clean(raw)
	if text == "" {
		return []model.Record{}
	}

	in := newInput(text)
	for _, s := range strategies {
		records := finalize(s.decode(n, in, p), s.name)
		if len(records) > 0 {
			n.logger.Debug().
				Str("profile", p.Name).
				Str("strategy", s.name).
				Int("records", len(records)).
				Msg("normalize.strategy_hit")
			return records
		}
		n.logger.Debug().Str("profile", p.Name).Str("strategy", s.name).Msg("normalize.strategy_miss")
	}

	n.logger.Debug().Str("profile", p.Name).Msg("normalize.exhausted")
	return []model.Record{}
}

// Normalize decodes raw with a default Normalizer.
func Normalize(raw string, p Profile) []model.Record {
	return New().Normalize(raw, p)
}

// finalize trims and clamps every record, drops invalid ones and tags the
// survivors with the strategy name.
func finalize(records []model.Record, strategyName string) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		rec.Name = strings.TrimSpace(rec.Name)
		rec.Description = strings.TrimSpace(rec.Description)
		rec.ReferenceRange = strings.TrimSpace(rec.ReferenceRange)
		rec.Value = strings.TrimSpace(rec.Value)
		rec.Remedy = strings.TrimSpace(rec.Remedy)
		rec.Confidence = model.ClampConfidence(rec.Confidence)
		if rec.Strategy == "" {
			rec.Strategy = strategyName
		}
		if !rec.Valid() {
			continue
		}
		out = append(out, rec)
	}
	return out
}
