package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/bankbot/bankbot/agent/contract"
	toolx "github.com/bankbot/bankbot/agent/tool"
)

func testResolver() *Resolver {
	return &Resolver{allowedTools: toolx.AllowedTools()}
}

func TestResolveRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	r := testResolver()

	_, err := r.Resolve(context.Background(), contractx.ResolverRequest{Text: "hi"})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing identity, got %v", err)
	}

	_, err = r.Resolve(context.Background(), contractx.ResolverRequest{Identity: "12345678901", Text: "  "})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty text, got %v", err)
	}
}

func TestToToolRequests(t *testing.T) {
	t.Parallel()

	r := testResolver()

	reqs, err := r.toToolRequests([]schema.ToolCall{
		{
			ID: "call-1",
			Function: schema.FunctionCall{
				Name:      toolx.ToolGetBalance,
				Arguments: `{"account_kind":"savings"}`,
			},
		},
		{
			ID: "call-2",
			Function: schema.FunctionCall{
				Name: toolx.ToolTransferGuidance,
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	if reqs[0].Tool != toolx.ToolGetBalance || reqs[0].Args["account_kind"] != "savings" {
		t.Fatalf("unexpected first request: %+v", reqs[0])
	}
	if len(reqs[1].Args) != 0 {
		t.Fatalf("expected empty args, got %+v", reqs[1].Args)
	}
}

func TestToToolRequestsRejectsUnknownTool(t *testing.T) {
	t.Parallel()

	r := testResolver()
	_, err := r.toToolRequests([]schema.ToolCall{
		{Function: schema.FunctionCall{Name: "execute_transfer"}},
	})
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestToToolRequestsRejectsMalformedArgs(t *testing.T) {
	t.Parallel()

	r := testResolver()
	_, err := r.toToolRequests([]schema.ToolCall{
		{Function: schema.FunctionCall{Name: toolx.ToolGetBalance, Arguments: "{not json"}},
	})
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestToMessagesMapsSpeakers(t *testing.T) {
	t.Parallel()

	msgs := toMessages([]contractx.Turn{
		{Speaker: contractx.SpeakerUser, Text: "hi"},
		{Speaker: contractx.SpeakerAssistant, Text: "hello"},
	})
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != schema.User || msgs[0].Content != "hi" {
		t.Fatalf("unexpected user message: %+v", msgs[0])
	}
	if msgs[1].Role != schema.Assistant || msgs[1].Content != "hello" {
		t.Fatalf("unexpected assistant message: %+v", msgs[1])
	}
}

func TestRenderResultPrefersError(t *testing.T) {
	t.Parallel()

	if got := renderResult(contractx.ToolResult{Output: "fine"}); got != "fine" {
		t.Fatalf("unexpected output: %s", got)
	}
	if got := renderResult(contractx.ToolResult{Output: "fine", Error: "broken"}); got != "broken" {
		t.Fatalf("protocol error must win: %s", got)
	}
}
