// Package labreport runs the lab result pipeline: page images are recognized
// into tokens, tokens are rebuilt into a table, the table is sent to a chat
// model and the answer is mapped to lab findings.
package labreport

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tsawler/labscan/chat"
	"github.com/tsawler/labscan/mapper"
	"github.com/tsawler/labscan/model"
	"github.com/tsawler/labscan/ocr"
	"github.com/tsawler/labscan/tables"
)

// ErrNoImages is returned by Analyze when no page image is given.
var ErrNoImages = errors.New("labreport: no images")

// Result is the outcome of one analysis.
type Result struct {
	RequestID string              `json:"request_id"`
	Pages     int                 `json:"pages"`
	Table     model.Table         `json:"-"`
	Raw       string              `json:"raw"`
	Findings  []mapper.LabFinding `json:"findings"`
}

// Analyzer wires the pipeline stages together.
type Analyzer struct {
	recognizer    ocr.Recognizer
	reconstructor tables.Reconstructor
	completer     chat.Completer
	mapper        *mapper.Mapper
	options       Options
	logger        zerolog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithReconstructor replaces the default geometric reconstructor.
func WithReconstructor(r tables.Reconstructor) Option {
	return func(a *Analyzer) {
		a.reconstructor = r
	}
}

// WithMapper replaces the default mapper.
func WithMapper(m *mapper.Mapper) Option {
	return func(a *Analyzer) {
		a.mapper = m
	}
}

// WithOptions sets prompt options.
func WithOptions(o Options) Option {
	return func(a *Analyzer) {
		a.options = o
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// New creates an Analyzer.
func New(recognizer ocr.Recognizer, completer chat.Completer, opts ...Option) *Analyzer {
	a := &Analyzer{
		recognizer:    recognizer,
		reconstructor: tables.NewGeometricReconstructor(),
		completer:     completer,
		mapper:        mapper.New(nil, nil),
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the whole pipeline over the page images of one document.
func (a *Analyzer) Analyze(ctx context.Context, images [][]byte) (*Result, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	ctx, requestID := a.requestContext(ctx)

	pages, err := ocr.RecognizeDocument(ctx, a.recognizer, images)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}

	return a.analyzePages(ctx, requestID, pages)
}

// AnalyzePages runs the pipeline from already recognized pages.
func (a *Analyzer) AnalyzePages(ctx context.Context, pages []model.Page) (*Result, error) {
	ctx, requestID := a.requestContext(ctx)
	return a.analyzePages(ctx, requestID, pages)
}

func (a *Analyzer) requestContext(ctx context.Context) (context.Context, string) {
	id := chat.RequestID(ctx)
	if id == "" {
		id = uuid.NewString()
		ctx = chat.WithRequestID(ctx, id)
	}
	return ctx, id
}

func (a *Analyzer) analyzePages(ctx context.Context, requestID string, pages []model.Page) (*Result, error) {
	log := a.logger.With().Str("request_id", requestID).Logger()

	table, err := tables.ReconstructPages(ctx, a.reconstructor, pages)
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}

	// An empty table is still sent; the model answers [] and the caller
	// sees no findings.
	if table.IsEmpty() {
		log.Warn().Int("pages", len(pages)).Msg("labreport.empty_table")
	}

	raw, err := a.completer.Complete(ctx, BuildMessages(table, a.options))
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	findings := a.mapper.LabFindings(raw)
	log.Info().
		Int("pages", len(pages)).
		Int("rows", table.RowCount()).
		Int("findings", len(findings)).
		Msg("labreport.analyzed")

	return &Result{
		RequestID: requestID,
		Pages:     len(pages),
		Table:     table,
		Raw:       raw,
		Findings:  findings,
	}, nil
}
