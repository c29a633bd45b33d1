// Package storetest holds behavior tests shared by every store.Store implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cognicore/twokenize/pkg/twokenize"
	"github.com/cognicore/twokenize/pkg/twokenize/internalerr"
	"github.com/cognicore/twokenize/pkg/twokenize/store"
)

// Run exercises a store returned by open. Each subtest gets a fresh store.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("UpsertAndGet", func(t *testing.T) { testUpsertAndGet(t, open(t)) })
	t.Run("UpsertReplaces", func(t *testing.T) { testUpsertReplaces(t, open(t)) })
	t.Run("EmptyID", func(t *testing.T) { testEmptyID(t, open(t)) })
	t.Run("ListNewestFirst", func(t *testing.T) { testListNewestFirst(t, open(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, open(t)) })
	t.Run("Aggregates", func(t *testing.T) { testAggregates(t, open(t)) })
}

// Doc tokenizes text with the default tokenizer into a document.
func Doc(t *testing.T, id, text string, at time.Time) store.Doc {
	t.Helper()
	tokens, err := twokenize.New(nil, twokenize.Options{NormalizeRepeatedPunctuation: true}).Tokenize(text)
	require.NoError(t, err)
	return store.Doc{ID: id, Source: "test", Text: text, CreatedAt: at, Tokens: tokens}
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testUpsertAndGet(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	doc := Doc(t, "01A", "wow!!! :) #go", base)
	require.NoError(t, st.UpsertDoc(ctx, doc))

	got, found, err := st.GetDoc(ctx, "01A")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, doc.ID, got.ID)
	require.Equal(t, doc.Source, got.Source)
	require.Equal(t, doc.Text, got.Text)
	require.True(t, doc.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", got.CreatedAt, doc.CreatedAt)
	require.Equal(t, doc.Tokens, got.Tokens)

	// returned docs are copies
	got.Tokens[0].Text = "changed"
	again, _, err := st.GetDoc(ctx, "01A")
	require.NoError(t, err)
	require.Equal(t, "wow", again.Tokens[0].Text)

	_, found, err = st.GetDoc(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)
}

func testUpsertReplaces(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	require.NoError(t, st.UpsertDoc(ctx, Doc(t, "01A", "first #one", base)))
	require.NoError(t, st.UpsertDoc(ctx, Doc(t, "01A", "second", base)))

	got, found, err := st.GetDoc(ctx, "01A")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "second", got.Text)
	require.Len(t, got.Tokens, 1)

	counts, err := st.ClassCounts(ctx)
	require.NoError(t, err)
	require.Zero(t, counts[twokenize.Hashtag], "old tokens must be replaced")
}

func testEmptyID(t *testing.T, st store.Store) {
	defer st.Close()
	err := st.UpsertDoc(context.Background(), store.Doc{Text: "no id"})
	require.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func testListNewestFirst(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	require.NoError(t, st.UpsertDoc(ctx, Doc(t, "01A", "old", base)))
	require.NoError(t, st.UpsertDoc(ctx, Doc(t, "01C", "newest", base.Add(2*time.Hour))))
	require.NoError(t, st.UpsertDoc(ctx, Doc(t, "01B", "middle", base.Add(time.Hour))))

	docs, err := st.ListDocs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "01C", docs[0].ID)
	require.Equal(t, "01B", docs[1].ID)

	all, err := st.ListDocs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func testDelete(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	require.NoError(t, st.UpsertDoc(ctx, Doc(t, "01A", "bye @bob", base)))
	require.NoError(t, st.DeleteDoc(ctx, "01A"))

	_, found, err := st.GetDoc(ctx, "01A")
	require.NoError(t, err)
	require.False(t, found)

	counts, err := st.ClassCounts(ctx)
	require.NoError(t, err)
	require.Zero(t, counts[twokenize.Mention], "tokens must be deleted with their doc")

	require.ErrorIs(t, st.DeleteDoc(ctx, "01A"), internalerr.ErrNotFound)
}

func testAggregates(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	require.NoError(t, st.UpsertDoc(ctx, Doc(t, "01A", "#go is fun #go", base)))
	require.NoError(t, st.UpsertDoc(ctx, Doc(t, "01B", "#rust and #go :)", base)))

	counts, err := st.ClassCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), counts[twokenize.Hashtag])
	require.Equal(t, int64(1), counts[twokenize.Emoticon])
	require.Equal(t, int64(3), counts[twokenize.Word])

	top, err := st.TopTokens(ctx, twokenize.Hashtag, 5)
	require.NoError(t, err)
	require.Equal(t, []store.TokenCount{
		{Text: "#go", Class: twokenize.Hashtag, Count: 3},
		{Text: "#rust", Class: twokenize.Hashtag, Count: 1},
	}, top)

	one, err := st.TopTokens(ctx, twokenize.Word, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.Equal(t, "and", one[0].Text, "ties are broken by text")
}
