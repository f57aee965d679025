package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTargetSpec(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		urlFlags []string
		expected TargetSpec
	}{
		{
			"no arguments",
			nil, nil,
			TargetSpec{Mode: AllDiscovered},
		},
		{
			"bare url token",
			[]string{"https://notes.example.com/author/n/n1"}, nil,
			TargetSpec{Mode: Explicit, URLs: []string{"https://notes.example.com/author/n/n1"}},
		},
		{
			"url flag",
			nil, []string{"http://notes.example.com/author/n/n2"},
			TargetSpec{Mode: Explicit, URLs: []string{"http://notes.example.com/author/n/n2"}},
		},
		{
			"query terms",
			[]string{"Alpha", "Beta"}, nil,
			TargetSpec{Mode: QueryFiltered, Terms: []string{"Alpha", "Beta"}},
		},
		{
			"urls win over terms",
			[]string{"Alpha", "https://notes.example.com/author/n/n1"}, nil,
			TargetSpec{
				Mode:  Explicit,
				URLs:  []string{"https://notes.example.com/author/n/n1"},
				Terms: []string{"Alpha"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseTargetSpec(tt.args, tt.urlFlags))
		})
	}
}

func TestResolveTargetsExplicitSkipsDiscovery(t *testing.T) {
	spec := TargetSpec{Mode: Explicit, URLs: []string{"https://a", "https://b"}}

	discovered := false
	refs, err := resolveTargets(context.Background(), spec, func(context.Context) ([]ArticleRef, error) {
		discovered = true
		return nil, nil
	})

	require.NoError(t, err)
	assert.False(t, discovered, "explicit mode must not crawl")
	assert.Equal(t, []ArticleRef{
		{URL: "https://a", HintTitle: URLTargetHint},
		{URL: "https://b", HintTitle: URLTargetHint},
	}, refs)
}

func TestResolveTargetsQueryFiltered(t *testing.T) {
	spec := TargetSpec{Mode: QueryFiltered, Terms: []string{"Alpha"}}
	discovered := []ArticleRef{
		{URL: "https://x/n/1", HintTitle: "Alpha"},
		{URL: "https://x/n/2", HintTitle: "Beta"},
		{URL: "https://x/n/3", HintTitle: "Gamma Alpha"},
	}

	refs, err := resolveTargets(context.Background(), spec, func(context.Context) ([]ArticleRef, error) {
		return discovered, nil
	})

	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "Alpha", refs[0].HintTitle)
	assert.Equal(t, "Gamma Alpha", refs[1].HintTitle)
}

func TestResolveTargetsQueryIsCaseSensitive(t *testing.T) {
	spec := TargetSpec{Mode: QueryFiltered, Terms: []string{"alpha"}}

	refs, err := resolveTargets(context.Background(), spec, func(context.Context) ([]ArticleRef, error) {
		return []ArticleRef{{URL: "https://x/n/1", HintTitle: "Alpha"}}, nil
	})

	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestResolveTargetsQueryMatchesURL(t *testing.T) {
	spec := TargetSpec{Mode: QueryFiltered, Terms: []string{"n/2"}}

	refs, err := resolveTargets(context.Background(), spec, func(context.Context) ([]ArticleRef, error) {
		return []ArticleRef{
			{URL: "https://x/n/1", HintTitle: "One"},
			{URL: "https://x/n/2", HintTitle: "Two"},
		}, nil
	})

	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Two", refs[0].HintTitle)
}

func TestResolveTargetsAllDiscovered(t *testing.T) {
	spec := TargetSpec{Mode: AllDiscovered}
	discovered := []ArticleRef{
		{URL: "https://x/n/1", HintTitle: "One"},
		{URL: "https://x/n/2", HintTitle: "Two"},
	}

	refs, err := resolveTargets(context.Background(), spec, func(context.Context) ([]ArticleRef, error) {
		return discovered, nil
	})

	require.NoError(t, err)
	assert.Equal(t, discovered, refs)
}
