package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "당신은 서울시 아파트 시세 분석 도우미입니다. " +
	"참고 데이터의 구체적인 수치와 정보를 활용하여 정확하고 간결하게 답변하세요. " +
	"참고 데이터에 없는 수치를 지어내지 마세요."

// AnthropicResponder answers chat turns with a hosted model, grounding
// the reply on the stage-specific data context.
type AnthropicResponder struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewAnthropicResponder(apiKey, model string) *AnthropicResponder {
	return &AnthropicResponder{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

func (r *AnthropicResponder) Respond(ctx context.Context, prompt, dataContext string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "[사용자 질문]\n%s\n\n", prompt)
	fmt.Fprintf(&b, "[참고 데이터]\n%s\n\n", dataContext)
	b.WriteString("---\n위 참고 데이터를 바탕으로 사용자 질문에 답변해주세요. 참고 데이터의 구체적인 수치와 정보를 활용하여 상세하게 답변해주세요.")

	system := systemPrompt
	// Most traffic is Korean; when it clearly isn't, reply in kind.
	if info := whatlanggo.Detect(prompt); info.IsReliable() && info.Lang != whatlanggo.Kor {
		system += fmt.Sprintf(" 사용자가 한국어가 아닌 언어(%s)로 질문하면 그 언어로 답변하세요.",
			info.Lang.Iso6391())
	}

	msg, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     r.model,
		MaxTokens: int64(1024),
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(b.String())),
		},
	})
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}

	var reply strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			reply.WriteString(tb.Text)
		}
	}
	if reply.Len() == 0 {
		return "", fmt.Errorf("model returned no text")
	}
	return reply.String(), nil
}
