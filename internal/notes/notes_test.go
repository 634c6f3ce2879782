package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtt-release/internal/model"
)

type fakeHistory struct {
	subjects []string
	err      error

	gotRange model.Range
	gotLimit int
}

func (f *fakeHistory) Subjects(_ context.Context, r model.Range, limit int) ([]string, error) {
	f.gotRange, f.gotLimit = r, limit
	return f.subjects, f.err
}

type fakeSummarizer struct {
	out   string
	err   error
	calls int
	got   []string
}

func (f *fakeSummarizer) Summarize(_ context.Context, messages []string) (string, error) {
	f.calls++
	f.got = messages
	return f.out, f.err
}

func TestGenerateEmptyLogSkipsSummarizer(t *testing.T) {
	for _, subjects := range [][]string{nil, {"Release v1.0.0", "Release v1.0.1"}} {
		sum := &fakeSummarizer{out: "should not be used"}
		g := Generator{History: &fakeHistory{subjects: subjects}, Summarizer: sum, Limit: 50}

		out := g.Generate(context.Background(), model.Range{})
		assert.Equal(t, "## Release Notes\n\nNo significant changes in this release.", out)
		assert.Zero(t, sum.calls)
	}
}

func TestGenerateUsesSummary(t *testing.T) {
	hist := &fakeHistory{subjects: []string{"feat: welcome", "Release v1.2.3", "fix: settings"}}
	sum := &fakeSummarizer{out: "Added a welcome dialog."}
	g := Generator{History: hist, Summarizer: sum, Limit: 50}

	out := g.Generate(context.Background(), model.Range{From: "v1.2.3"})
	assert.Equal(t, "## Release Notes\n\nAdded a welcome dialog.", out)
	assert.Equal(t, 1, sum.calls)
	if diff := cmp.Diff([]string{"feat: welcome", "fix: settings"}, sum.got); diff != "" {
		t.Fatalf("summarizer input mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, model.Range{From: "v1.2.3"}, hist.gotRange)
	assert.Equal(t, 50, hist.gotLimit)
}

func TestGenerateFallsBackOnSummarizerFailure(t *testing.T) {
	cases := map[string]*fakeSummarizer{
		"error":        {err: errors.New("connection refused")},
		"empty":        {out: ""},
		"only heading": {out: "## Release Notes\n\n"},
	}
	for name, sum := range cases {
		t.Run(name, func(t *testing.T) {
			g := Generator{
				History:    &fakeHistory{subjects: []string{"msg1", "msg2", "msg3"}},
				Summarizer: sum,
			}
			out := g.Generate(context.Background(), model.Range{})
			assert.Equal(t, "## What's Changed\n\n- msg1\n- msg2\n- msg3", out)
			assert.Equal(t, 1, sum.calls, "no retries")
		})
	}
}

func TestGenerateWithoutSummarizer(t *testing.T) {
	g := Generator{History: &fakeHistory{subjects: []string{"a"}}}
	assert.Equal(t, "## What's Changed\n\n- a", g.Generate(context.Background(), model.Range{}))
}

func TestGenerateHistoryFailure(t *testing.T) {
	sum := &fakeSummarizer{out: "x"}
	g := Generator{History: &fakeHistory{err: errors.New("not a git repository")}, Summarizer: sum}

	out := g.Generate(context.Background(), model.Range{})
	assert.Equal(t, NoChanges, out)
	assert.Zero(t, sum.calls)
}

func TestFilterReleaseCommits(t *testing.T) {
	got := FilterReleaseCommits([]string{
		"Release v1.0.0",
		"feat: Release v2 prep",
		"Release notes tweak",
		"Release v",
		"fix: bug",
	}, DefaultReleasePrefix)
	want := []string{"feat: Release v2 prep", "Release notes tweak", "fix: bug"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestBulletize(t *testing.T) {
	assert.Equal(t, NoChanges, Bulletize(nil))
	assert.Equal(t, "## What's Changed\n\n- only", Bulletize([]string{"only"}))
}

func TestSanitizeSummary(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  plain summary \n", "plain summary"},
		{"```markdown\nFenced summary.\n```", "Fenced summary."},
		{"```\nBare fence.\n```", "Bare fence."},
		{"## Release Notes\n\nBody text.", "Body text."},
		{"# release notes\nBody.", "Body."},
		{"Intro mentioning ## Release Notes inline.", "Intro mentioning ## Release Notes inline."},
	}
	for _, tc := range tests {
		got := sanitizeSummary(tc.in)
		require.Equal(t, tc.want, got, "sanitizeSummary(%q)", tc.in)
	}
}
