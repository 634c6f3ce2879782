package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatModel struct {
	reply *schema.Message
	err   error
	got   []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.got = in
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not used")
}

func TestChatSummarize(t *testing.T) {
	fake := &fakeChatModel{reply: schema.AssistantMessage("  Improved the welcome flow. ", nil)}
	c := &Chat{model: fake, instruction: "Summarize:"}

	out, err := c.Summarize(context.Background(), []string{"feat: a", "fix: b"})
	require.NoError(t, err)
	assert.Equal(t, "Improved the welcome flow.", out)

	require.Len(t, fake.got, 1)
	assert.Equal(t, schema.User, fake.got[0].Role)
	assert.Equal(t, "Summarize:\n\nfeat: a\nfix: b", fake.got[0].Content)
}

func TestChatFailures(t *testing.T) {
	ctx := context.Background()

	_, err := (&Chat{model: &fakeChatModel{err: errors.New("refused")}}).Summarize(ctx, []string{"x"})
	assert.Error(t, err)

	_, err = (&Chat{model: &fakeChatModel{reply: schema.AssistantMessage("", nil)}}).Summarize(ctx, []string{"x"})
	assert.ErrorIs(t, err, ErrEmptySummary)

	_, err = (&Chat{model: &fakeChatModel{}}).Summarize(ctx, []string{"x"})
	assert.ErrorIs(t, err, ErrEmptySummary)

	_, err = (&Chat{model: &fakeChatModel{}}).Summarize(ctx, nil)
	assert.ErrorIs(t, err, ErrNoMessages)
}

func TestChatAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/chat/completions"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "qwen2.5:7b",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Summary from chat."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14}
		}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL + "/v1/completions")
	cfg.Backend = "chat"
	s, err := New(context.Background(), cfg)
	require.NoError(t, err)

	out, err := s.Summarize(context.Background(), []string{"feat: a"})
	require.NoError(t, err)
	assert.Equal(t, "Summary from chat.", out)
}

func TestBaseURL(t *testing.T) {
	tests := map[string]string{
		"http://localhost:11434/v1/completions":      "http://localhost:11434/v1",
		"http://localhost:11434/v1/chat/completions": "http://localhost:11434/v1",
		"http://localhost:11434/v1/":                 "http://localhost:11434/v1",
	}
	for in, want := range tests {
		assert.Equal(t, want, baseURL(in), in)
	}
}
