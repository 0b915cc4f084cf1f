package classifier

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/config"
	"github.com/safenest/trustpipe/pkg/domain/moderation"
	"github.com/safenest/trustpipe/pkg/infra/httpx"
	"github.com/safenest/trustpipe/pkg/infra/metrics"
	"github.com/safenest/trustpipe/pkg/infra/providers"
)

const breakerMaxFailures = 5

// ImageRef points at the image to classify: a URL or raw bytes.
type ImageRef struct {
	URL   string
	Bytes []byte
	MIME  string
}

// Classifier is the Layer-2 semantic adapter. Every failure mode (transport
// error, timeout, open breaker, unparsable reply) resolves to an allowed
// verdict carrying the fallback marker: availability wins over strictness at
// this layer, but the failure stays observable.
type Classifier struct {
	provider     providers.Client
	providerName string
	cfg          config.ClassifierConfig
	breaker      httpx.CircuitBreaker
	logger       *logrus.Logger
}

func NewClassifier(
	logger *logrus.Logger,
	providerName string,
	provider providers.Client,
	cfg config.ClassifierConfig,
) *Classifier {
	return &Classifier{
		provider:     provider,
		providerName: providerName,
		cfg:          cfg,
		breaker:      httpx.NewCircuitBreaker("classifier:"+providerName, cfg.Timeout, breakerMaxFailures),
		logger:       logger,
	}
}

// Classify runs the external semantic classification over text plus its
// bounded trailing conversation window.
func (c *Classifier) Classify(ctx context.Context, text, surface string, contextWindow []string) *moderation.Verdict {
	input := providers.Input{Text: text, Context: contextWindow}
	return c.classify(ctx, input, surface, "text")
}

// ClassifyImage classifies an image and reports any OCR-extracted text in
// the verdict's DetectedText; the caller re-runs that text through the text
// layers and merges.
func (c *Classifier) ClassifyImage(ctx context.Context, ref ImageRef, surface string) *moderation.Verdict {
	input := providers.Input{
		ImageURL:   ref.URL,
		ImageBytes: ref.Bytes,
		ImageMIME:  ref.MIME,
	}
	return c.classify(ctx, input, surface, "image")
}

func (c *Classifier) classify(ctx context.Context, input providers.Input, surface, inputKind string) *moderation.Verdict {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	providerCfg := &providers.Config{
		Credentials:  providers.Credentials{ApiKey: c.cfg.APIKey},
		Model:        c.cfg.Model,
		SystemPrompt: systemPrompt,
		MaxTokens:    512,
	}

	var resp *providers.Response
	start := time.Now()
	err := c.breaker.Execute(func() error {
		var callErr error
		resp, callErr = c.provider.Classify(callCtx, providerCfg, input)
		return callErr
	})
	metrics.ClassifierLatency.WithLabelValues(c.providerName, inputKind).
		Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		return c.failOpen(surface, inputKind, "call", err)
	}

	verdict, err := parseVerdict(resp.Response)
	if err != nil {
		return c.failOpen(surface, inputKind, "parse", err)
	}

	return verdict
}

func (c *Classifier) failOpen(surface, inputKind, kind string, err error) *moderation.Verdict {
	c.logger.WithError(err).WithFields(logrus.Fields{
		"provider": c.providerName,
		"surface":  surface,
		"input":    inputKind,
		"kind":     kind,
	}).Warn("classifier unavailable, failing open")
	metrics.ClassifierFailuresTotal.WithLabelValues(c.providerName, kind).Inc()

	verdict := moderation.Allow()
	verdict.Fallback = true
	return verdict
}
