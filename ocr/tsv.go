package ocr

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tsawler/labscan/model"
)

// ErrEmptyImage is returned when Recognize is given no image data.
var ErrEmptyImage = errors.New("empty image")

// TSV levels as emitted by tesseract.
const (
	tsvLevelPage = 1
	tsvLevelWord = 5
)

// tsv column indexes
const (
	colLevel = iota
	colPageNum
	colBlockNum
	colParNum
	colLineNum
	colWordNum
	colLeft
	colTop
	colWidth
	colHeight
	colConf
	colText
	tsvColumns
)

type tsvBox struct {
	text                     string
	left, top, right, bottom float64
}

type tsvPage struct {
	number        int
	width, height float64
	words         []tsvBox
}

// ParseTSV parses tesseract TSV output into pages of tokens. Level 1 rows
// give each page's pixel size and level 5 rows are words; words with a
// confidence below minConfidence or with blank text are skipped. A page whose
// size row is missing is normalized by the extent of its words.
func ParseTSV(r io.Reader, minConfidence float64) ([]model.Page, error) {
	var pages []*tsvPage
	byNumber := make(map[int]*tsvPage)

	pageFor := func(n int) *tsvPage {
		if p, ok := byNumber[n]; ok {
			return p
		}
		p := &tsvPage{number: n}
		byNumber[n] = p
		pages = append(pages, p)
		return p
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "level\t") {
			continue
		}

		cols := strings.Split(text, "\t")
		if len(cols) < tsvColumns-1 {
			return nil, fmt.Errorf("tsv line %d: %d columns, want %d", line, len(cols), tsvColumns)
		}

		nums, err := parseInts(cols[:colConf])
		if err != nil {
			return nil, fmt.Errorf("tsv line %d: %w", line, err)
		}

		page := pageFor(nums[colPageNum])
		switch nums[colLevel] {
		case tsvLevelPage:
			page.width = float64(nums[colWidth])
			page.height = float64(nums[colHeight])
		case tsvLevelWord:
			conf, err := strconv.ParseFloat(strings.TrimSpace(cols[colConf]), 64)
			if err != nil {
				return nil, fmt.Errorf("tsv line %d: conf: %w", line, err)
			}
			word := ""
			if len(cols) > colText {
				word = strings.Join(cols[colText:], "\t")
			}
			if strings.TrimSpace(word) == "" || conf < minConfidence {
				continue
			}
			left, top := float64(nums[colLeft]), float64(nums[colTop])
			page.words = append(page.words, tsvBox{
				text:   strings.TrimSpace(word),
				left:   left,
				top:    top,
				right:  left + float64(nums[colWidth]),
				bottom: top + float64(nums[colHeight]),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tsv: %w", err)
	}

	out := make([]model.Page, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.tokens())
	}
	return out, nil
}

func (p *tsvPage) tokens() model.Page {
	w, h := p.width, p.height
	if w <= 0 || h <= 0 {
		for _, b := range p.words {
			if b.right > w {
				w = b.right
			}
			if b.bottom > h {
				h = b.bottom
			}
		}
	}

	page := model.NewPage(p.number)
	for _, b := range p.words {
		page.AddToken(model.NewTokenFromPixels(b.text, b.left, b.top, b.right, b.bottom, w, h))
	}
	return page
}

func parseInts(cols []string) ([]int, error) {
	out := make([]int, len(cols))
	for i, c := range cols {
		v, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// TSVConfig configures a TSVRecognizer.
type TSVConfig struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	Language      string // default "eng"
	PSM           PageSegMode
	TessdataDir   string
	MinConfidence float64 // words below this tesseract confidence (0..100) are dropped
}

// TSVRecognizer runs the tesseract binary with TSV output.
type TSVRecognizer struct {
	cfg    TSVConfig
	runner Runner
	logger zerolog.Logger
}

// TSVOption configures a TSVRecognizer.
type TSVOption func(*TSVRecognizer)

// WithRunner replaces the command runner.
func WithRunner(r Runner) TSVOption {
	return func(t *TSVRecognizer) {
		t.runner = r
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) TSVOption {
	return func(t *TSVRecognizer) {
		t.logger = l
	}
}

// NewTSVRecognizer creates a recognizer that shells out to tesseract.
func NewTSVRecognizer(cfg TSVConfig, opts ...TSVOption) *TSVRecognizer {
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	t := &TSVRecognizer{cfg: cfg, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	if t.runner == nil {
		t.runner = execRunner{logger: t.logger}
	}
	return t
}

// Recognize writes the image to a temporary file, runs tesseract on it and
// returns the tokens of the first page of output.
func (t *TSVRecognizer) Recognize(ctx context.Context, image []byte) ([]model.Token, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	f, err := os.CreateTemp("", "labscan-*.img")
	if err != nil {
		return nil, fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(image); err != nil {
		f.Close()
		return nil, fmt.Errorf("write temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp image: %w", err)
	}

	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, t.args(f.Name())...)
	if err != nil {
		return nil, fmt.Errorf("tesseract TSV: %w: %s", err, truncate(strings.TrimSpace(string(errb)), 512))
	}

	pages, err := ParseTSV(bytes.NewReader(out), t.cfg.MinConfidence)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return []model.Token{}, nil
	}
	if len(pages) > 1 {
		t.logger.Debug().Int("pages", len(pages)).Msg("ocr.tsv_extra_pages_ignored")
	}
	return pages[0].Tokens, nil
}

// tesseract <file> stdout -l <lang> [--psm n] [--tessdata-dir d] tsv
func (t *TSVRecognizer) args(path string) []string {
	args := []string{path, "stdout", "-l", t.cfg.Language}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(int(t.cfg.PSM)))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	return append(args, "tsv")
}
