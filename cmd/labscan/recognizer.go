package main

import (
	"fmt"

	"github.com/tsawler/labscan/config"
	"github.com/tsawler/labscan/ocr"
)

// newRecognizer builds the configured OCR engine. The returned func releases
// engine resources and is always safe to call.
func newRecognizer() (ocr.Recognizer, func(), error) {
	noop := func() {}

	switch cfg.OCR.Engine {
	case config.EngineGosseract:
		client, err := ocr.New()
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn().Err(err).Msg("ocr.close_failed")
			}
		}
		if err := client.SetLanguage(cfg.OCR.Language); err != nil {
			closeFn()
			return nil, noop, fmt.Errorf("set language: %w", err)
		}
		if cfg.OCR.PSM > 0 {
			if err := client.SetPageSegMode(ocr.PageSegMode(cfg.OCR.PSM)); err != nil {
				closeFn()
				return nil, noop, fmt.Errorf("set page segmentation mode: %w", err)
			}
		}
		client.SetMinConfidence(cfg.OCR.MinConfidence)
		return client, closeFn, nil

	default:
		return ocr.NewTSVRecognizer(cfg.TSV(), ocr.WithLogger(logger)), noop, nil
	}
}
