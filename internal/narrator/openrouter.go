package narrator

import (
	"context"
	"errors"

	"TalentMatch/internal/config"
	"TalentMatch/internal/utils/httpclient"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// openRouterCompleter 基于OpenAI兼容SDK的OpenRouter补全客户端
type openRouterCompleter struct {
	client *openai.Client
}

// newOpenRouterCompleter 创建OpenRouter客户端。
// HTTP-Referer / X-Title 为OpenRouter推荐的归因头，通过默认请求头注入
func newOpenRouterCompleter(cfg *config.NarratorConfig, logger *logrus.Logger) *openRouterCompleter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	headers := map[string]string{}
	if cfg.AppURL != "" {
		headers["HTTP-Referer"] = cfg.AppURL
	}
	if cfg.AppName != "" {
		headers["X-Title"] = cfg.AppName
	}
	clientCfg.HTTPClient = httpclient.New(cfg.Timeout, cfg.Proxy, headers, logger)

	return &openRouterCompleter{client: openai.NewClientWithConfig(clientCfg)}
}

// Complete 发起单次chat补全并返回首个文本回复
func (c *openRouterCompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("上游返回了空的choices")
	}
	return resp.Choices[0].Message.Content, nil
}
