package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/laurel/pkg/models"
)

// fakeStore records every persistence call and keeps loaded pubmed ids so
// the reference pass sees the same view a real graph would.
type fakeStore struct {
	mu sync.Mutex

	articles  map[string]*models.Article
	stubs     []models.Reference
	citations [][2]string

	upsertErr error
	existsErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{articles: make(map[string]*models.Article)}
}

func (f *fakeStore) UpsertArticle(_ context.Context, article *models.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.articles[article.PubMedID] = article
	return nil
}

func (f *fakeStore) UpsertReferenceArticle(_ context.Context, ref models.Reference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stubs = append(f.stubs, ref)
	return nil
}

func (f *fakeStore) LinkCitation(_ context.Context, citing, cited string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.citations = append(f.citations, [2]string{citing, cited})
	return nil
}

func (f *fakeStore) ArticleExists(_ context.Context, pubmedID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.articles[pubmedID]
	return ok, nil
}

func (f *fakeStore) CountArticles(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.articles)), nil
}

func noopLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func writeCollection(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collection.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const citingCollection = `<?xml version="1.0" encoding="UTF-8"?>
<collection>
  <source>PubTator</source>
  <document>
    <id>100</id>
    <passage>
      <infon key="section_type">TITLE</infon>
      <infon key="article-id_pmid">100</infon>
      <infon key="journal">Nature; (2020) 10</infon>
      <offset>0</offset>
      <text>Citing article</text>
    </passage>
    <passage>
      <infon key="section_type">REF</infon>
      <infon key="type">ref</infon>
      <infon key="pub-id_pmid">200</infon>
      <offset>20</offset>
      <text>The internal citation</text>
    </passage>
    <passage>
      <infon key="section_type">REF</infon>
      <infon key="type">ref</infon>
      <infon key="pub-id_pmid">999</infon>
      <infon key="source">BMJ</infon>
      <infon key="year">2019</infon>
      <offset>40</offset>
      <text>The external citation</text>
    </passage>
    <passage>
      <infon key="section_type">REF</infon>
      <infon key="type">ref</infon>
      <offset>60</offset>
      <text>An untraceable citation</text>
    </passage>
  </document>
  <document>
    <id>200</id>
    <passage>
      <infon key="section_type">TITLE</infon>
      <infon key="article-id_pmid">200</infon>
      <offset>0</offset>
      <text>Cited article</text>
    </passage>
  </document>
  <document>
    <id>300</id>
    <passage>
      <infon key="section_type">ABSTRACT</infon>
      <offset>0</offset>
      <text>No title passage here</text>
    </passage>
  </document>
</collection>`

func TestLoader_Run(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil, noopLogger())

	stats, err := l.Run(context.Background(), writeCollection(t, citingCollection))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.DocumentsRead)
	assert.Equal(t, 2, stats.ArticlesLoaded)
	assert.Equal(t, 1, stats.DocumentsSkipped)
	assert.Equal(t, 1, stats.InternalReferences)
	assert.Equal(t, 1, stats.ExternalReferences)
	assert.Equal(t, 0, stats.FailedReferences)

	// internal citation linked to the already loaded article
	require.Len(t, store.citations, 1)
	assert.Equal(t, [2]string{"100", "200"}, store.citations[0])

	// external citation became a stub
	require.Len(t, store.stubs, 1)
	assert.Equal(t, "999", store.stubs[0].PubMedID)
	assert.Equal(t, "100", store.stubs[0].ParentPubMedID)
	assert.Equal(t, "BMJ", store.stubs[0].Journal.Name)

	// the untraceable citation was dropped, not failed
	assert.Len(t, store.articles, 2)
}

func TestLoader_Run_Idempotent(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil, noopLogger())
	path := writeCollection(t, citingCollection)

	_, err := l.Run(context.Background(), path)
	require.NoError(t, err)
	stats, err := l.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ArticlesLoaded)
	assert.Len(t, store.articles, 2)
}

func TestLoader_Run_UpsertFailureIsContained(t *testing.T) {
	store := newFakeStore()
	store.upsertErr = errors.New("graph down")
	l := New(store, nil, noopLogger())

	stats, err := l.Run(context.Background(), writeCollection(t, citingCollection))
	require.NoError(t, err)

	assert.Equal(t, 0, stats.ArticlesLoaded)
	assert.Equal(t, 3, stats.DocumentsSkipped)
}

func TestLoader_Run_ExistenceFailureCountsReference(t *testing.T) {
	store := newFakeStore()
	store.existsErr = errors.New("graph down")
	l := New(store, nil, noopLogger())

	stats, err := l.Run(context.Background(), writeCollection(t, citingCollection))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FailedReferences)
	assert.Empty(t, store.citations)
}

func TestLoader_Run_MalformedFileAborts(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil, noopLogger())

	_, err := l.Run(context.Background(), writeCollection(t, `<collection><document><id>1</id>`))
	require.Error(t, err)
}

func TestLoader_Run_MissingFile(t *testing.T) {
	l := New(newFakeStore(), nil, noopLogger())

	_, err := l.Run(context.Background(), filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
}

func TestLoader_Run_EmptyCollection(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil, noopLogger())

	stats, err := l.Run(context.Background(), writeCollection(t, `<collection><source>empty</source></collection>`))
	require.NoError(t, err)

	assert.Equal(t, 0, stats.DocumentsRead)
	assert.Equal(t, 0, stats.ArticlesLoaded)

	total, err := store.CountArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
