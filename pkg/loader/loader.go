// Package loader orchestrates the two-pass load of a BioC collection into
// the graph. The first pass persists every resolvable article; the second
// reopens the file and resolves citations, which requires the first pass to
// have finished so that internal references can be told apart from external
// ones by node existence.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/laurel/pkg/bioc"
	"github.com/Ramsey-B/laurel/pkg/events"
	"github.com/Ramsey-B/laurel/pkg/extractor"
	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// GraphStore is the persistence surface the loader writes through.
type GraphStore interface {
	UpsertArticle(ctx context.Context, article *models.Article) error
	UpsertReferenceArticle(ctx context.Context, ref models.Reference) error
	LinkCitation(ctx context.Context, citingPubMedID, citedPubMedID string) error
	ArticleExists(ctx context.Context, pubmedID string) (bool, error)
	CountArticles(ctx context.Context) (int64, error)
}

// Stats summarizes one complete load.
type Stats struct {
	DocumentsRead      int
	ArticlesLoaded     int
	DocumentsSkipped   int
	InternalReferences int
	ExternalReferences int
	FailedReferences   int
}

// Loader drives both passes over a collection file.
type Loader struct {
	store   GraphStore
	emitter *events.Emitter
	logger  ectologger.Logger
}

// New creates a loader. The emitter may be nil when eventing is disabled.
func New(store GraphStore, emitter *events.Emitter, logger ectologger.Logger) *Loader {
	return &Loader{
		store:   store,
		emitter: emitter,
		logger:  logger,
	}
}

// Run loads the collection at path: articles first, citations second. A
// document that cannot be resolved or persisted is logged and skipped; a
// malformed stream aborts the run, since everything after the bad token
// would be lost anyway.
func (l *Loader) Run(ctx context.Context, path string) (Stats, error) {
	ctx, span := tracing.StartSpan(ctx, "loader.Loader.Run")
	defer span.End()

	log := l.logger.WithContext(ctx).WithFields(map[string]any{"path": path})

	var stats Stats
	if err := l.loadArticles(ctx, path, &stats); err != nil {
		return stats, fmt.Errorf("article pass: %w", err)
	}
	log.WithFields(map[string]any{
		"documents": stats.DocumentsRead,
		"loaded":    stats.ArticlesLoaded,
		"skipped":   stats.DocumentsSkipped,
	}).Info("article pass complete")

	if err := l.loadReferences(ctx, path, &stats); err != nil {
		return stats, fmt.Errorf("reference pass: %w", err)
	}
	log.WithFields(map[string]any{
		"internal": stats.InternalReferences,
		"external": stats.ExternalReferences,
		"failed":   stats.FailedReferences,
	}).Info("reference pass complete")

	return stats, nil
}

// loadArticles is the first pass: every document with a resolvable title
// passage becomes an article upsert.
func (l *Loader) loadArticles(ctx context.Context, path string, stats *Stats) error {
	ctx, span := tracing.StartSpan(ctx, "loader.Loader.loadArticles")
	defer span.End()

	supplier, err := bioc.NewDocumentSupplier(path)
	if err != nil {
		return err
	}
	defer supplier.Close()

	for {
		doc, err := supplier.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		stats.DocumentsRead++

		log := l.logger.WithContext(ctx).WithFields(map[string]any{"document_id": doc.ID})

		article, err := extractor.BuildArticle(doc)
		if err != nil {
			log.WithError(err).Warn("skipping unresolvable document")
			stats.DocumentsSkipped++
			continue
		}
		if !article.IsValid() {
			log.Warn("skipping document without pubmed id")
			stats.DocumentsSkipped++
			continue
		}

		if err := l.store.UpsertArticle(ctx, article); err != nil {
			log.WithError(err).Error("failed to upsert article")
			stats.DocumentsSkipped++
			continue
		}
		stats.ArticlesLoaded++

		if err := l.emitter.ArticleLoaded(ctx, article); err != nil {
			log.WithError(err).Warn("failed to emit article event")
		}
	}
}

// loadReferences is the second pass: reopen the file and resolve each
// document's reference list against the now-populated graph.
func (l *Loader) loadReferences(ctx context.Context, path string, stats *Stats) error {
	ctx, span := tracing.StartSpan(ctx, "loader.Loader.loadReferences")
	defer span.End()

	supplier, err := bioc.NewDocumentSupplier(path)
	if err != nil {
		return err
	}
	defer supplier.Close()

	for {
		doc, err := supplier.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		l.resolveDocumentReferences(ctx, doc, stats)
	}
}

// resolveDocumentReferences handles one document's citations. Failures are
// contained to the single reference so one bad citation does not lose the
// rest of the document's list.
func (l *Loader) resolveDocumentReferences(ctx context.Context, doc *bioc.Document, stats *Stats) {
	log := l.logger.WithContext(ctx).WithFields(map[string]any{"document_id": doc.ID})

	title, err := extractor.TitlePassage(doc)
	if err != nil {
		log.WithError(err).Warn("skipping references of unresolvable document")
		return
	}
	pubmedID := extractor.PubMedID(title)
	if pubmedID == "" {
		return
	}

	for _, ref := range extractor.References(pubmedID, doc) {
		internal, err := l.resolveReference(ctx, ref)
		if err != nil {
			log.WithError(err).WithFields(map[string]any{
				"cited_pubmed_id": ref.PubMedID,
				"cited_doi":       ref.DOI,
			}).Error("failed to resolve reference")
			stats.FailedReferences++
			continue
		}

		if internal {
			stats.InternalReferences++
		} else {
			stats.ExternalReferences++
		}
		if err := l.emitter.ReferenceResolved(ctx, ref, internal); err != nil {
			log.WithError(err).Warn("failed to emit reference event")
		}
	}
}

// resolveReference links the citation when the cited work was loaded in the
// first pass, and creates a stub for it otherwise. It reports whether the
// reference was internal to the collection.
func (l *Loader) resolveReference(ctx context.Context, ref models.Reference) (bool, error) {
	if ref.PubMedID != "" {
		exists, err := l.store.ArticleExists(ctx, ref.PubMedID)
		if err != nil {
			return false, err
		}
		if exists {
			return true, l.store.LinkCitation(ctx, ref.ParentPubMedID, ref.PubMedID)
		}
	}

	return false, l.store.UpsertReferenceArticle(ctx, ref)
}
