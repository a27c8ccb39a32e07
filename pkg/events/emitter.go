// Package events emits load notifications after graph writes succeed. The
// emitter is optional; a nil emitter swallows every call so the loader does
// not have to branch on whether eventing is enabled.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// Event types carried in the event_type header and payload.
const (
	EventArticleLoaded     = "article.loaded"
	EventReferenceResolved = "reference.resolved"
)

// ArticleEvent announces that an article node and its satellites were
// upserted.
type ArticleEvent struct {
	EventType   string    `json:"event_type"`
	PubMedID    string    `json:"pubmed_id"`
	DOI         string    `json:"doi,omitempty"`
	Labels      []string  `json:"labels"`
	Authors     int       `json:"authors"`
	Annotations int       `json:"annotations"`
	Timestamp   time.Time `json:"timestamp"`
}

// ReferenceEvent announces that a citation was resolved, either to another
// loaded article or to a newly created stub.
type ReferenceEvent struct {
	EventType      string    `json:"event_type"`
	CitingPubMedID string    `json:"citing_pubmed_id"`
	CitedPubMedID  string    `json:"cited_pubmed_id,omitempty"`
	CitedDOI       string    `json:"cited_doi,omitempty"`
	Internal       bool      `json:"internal"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher is the transport the emitter writes through.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte, headers map[string]string) error
}

// Emitter serializes load events and hands them to the publisher.
type Emitter struct {
	publisher Publisher
	logger    ectologger.Logger
}

// NewEmitter creates an emitter over the given publisher.
func NewEmitter(publisher Publisher, logger ectologger.Logger) *Emitter {
	return &Emitter{
		publisher: publisher,
		logger:    logger,
	}
}

// ArticleLoaded publishes an article.loaded event. Safe on a nil emitter.
func (e *Emitter) ArticleLoaded(ctx context.Context, article *models.Article) error {
	if e == nil {
		return nil
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.ArticleLoaded")
	defer span.End()

	event := ArticleEvent{
		EventType:   EventArticleLoaded,
		PubMedID:    article.PubMedID,
		DOI:         article.DOI,
		Labels:      article.Labels,
		Authors:     len(article.Authors),
		Annotations: len(article.Annotations),
		Timestamp:   time.Now().UTC(),
	}

	return e.publish(ctx, event.EventType, article.PubMedID, event)
}

// ReferenceResolved publishes a reference.resolved event. Safe on a nil
// emitter.
func (e *Emitter) ReferenceResolved(ctx context.Context, ref models.Reference, internal bool) error {
	if e == nil {
		return nil
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.ReferenceResolved")
	defer span.End()

	event := ReferenceEvent{
		EventType:      EventReferenceResolved,
		CitingPubMedID: ref.ParentPubMedID,
		CitedPubMedID:  ref.PubMedID,
		CitedDOI:       ref.DOI,
		Internal:       internal,
		Timestamp:      time.Now().UTC(),
	}

	return e.publish(ctx, event.EventType, ref.ParentPubMedID, event)
}

func (e *Emitter) publish(ctx context.Context, eventType, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	headers := map[string]string{"event_type": eventType}
	if err := e.publisher.Publish(ctx, key, payload, headers); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	e.logger.WithContext(ctx).WithFields(map[string]any{
		"event_type": eventType,
		"key":        key,
	}).Debug("event published")
	return nil
}
