package narrator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type stubResult struct {
	text string
	err  error
}

// stubCompleter 按调用顺序弹出预置结果，并记录每次调用的模型与提示词
type stubCompleter struct {
	results []stubResult
	models  []string
	prompts []string
}

func (s *stubCompleter) Complete(_ context.Context, model, prompt string) (string, error) {
	s.models = append(s.models, model)
	s.prompts = append(s.prompts, prompt)
	if len(s.results) == 0 {
		return "", errors.New("stub: 结果耗尽")
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r.text, r.err
}

func newTestService(stub *stubCompleter, models []string, maxAttempts int) (*Service, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Service{
		completer:      stub,
		models:         models,
		maxAttempts:    maxAttempts,
		initialBackoff: time.Second,
		sleep:          func(d time.Duration) { *sleeps = append(*sleeps, d) },
		logger:         logger,
	}, sleeps
}

func rateLimitErr() error { return &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests} }
func transientErr() error { return &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable} }
func fatalErr() error     { return &openai.APIError{HTTPStatusCode: http.StatusBadRequest} }

func TestGenerateFirstModelSucceeds(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{{text: "profile"}}}
	svc, sleeps := newTestService(stub, []string{"model-a", "model-b"}, 4)

	text, err := svc.GenerateJobProfile(context.Background(), "Data Analyst", "Middle", "Drive insights")
	require.NoError(t, err)
	require.Equal(t, "profile", text)
	require.Equal(t, []string{"model-a"}, stub.models)
	require.Empty(t, *sleeps)

	// 提示词包含三个输入字段
	require.True(t, strings.Contains(stub.prompts[0], "Data Analyst"))
	require.True(t, strings.Contains(stub.prompts[0], "Middle"))
	require.True(t, strings.Contains(stub.prompts[0], "Drive insights"))
}

func TestGenerateSwitchesModelImmediatelyOnRateLimit(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{err: rateLimitErr()},
		{text: "profile"},
	}}
	svc, sleeps := newTestService(stub, []string{"model-a", "model-b"}, 4)

	text, err := svc.GenerateJobProfile(context.Background(), "Data Analyst", "Middle", "")
	require.NoError(t, err)
	require.Equal(t, "profile", text)

	// 限流不等待：model-a 只试一次就切到 model-b
	require.Equal(t, []string{"model-a", "model-b"}, stub.models)
	require.Empty(t, *sleeps)
}

func TestGenerateBacksOffOnTransientErrors(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{err: transientErr()},
		{err: transientErr()},
		{text: "profile"},
	}}
	svc, sleeps := newTestService(stub, []string{"model-a"}, 4)

	text, err := svc.GenerateJobProfile(context.Background(), "Data Analyst", "Middle", "")
	require.NoError(t, err)
	require.Equal(t, "profile", text)

	// 同一模型内指数退避：1s、2s
	require.Equal(t, []string{"model-a", "model-a", "model-a"}, stub.models)
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *sleeps)
}

func TestGenerateMovesToNextModelAfterTransientExhaustion(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{err: transientErr()},
		{err: transientErr()},
		{text: "profile"},
	}}
	svc, sleeps := newTestService(stub, []string{"model-a", "model-b"}, 2)

	text, err := svc.GenerateJobProfile(context.Background(), "Data Analyst", "Middle", "")
	require.NoError(t, err)
	require.Equal(t, "profile", text)

	// model-a 两次尝试耗尽后切换；最后一次尝试失败后不再等待
	require.Equal(t, []string{"model-a", "model-a", "model-b"}, stub.models)
	require.Equal(t, []time.Duration{time.Second}, *sleeps)
}

func TestGenerateAbortsModelOnFatalError(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{err: fatalErr()},
		{text: "profile"},
	}}
	svc, sleeps := newTestService(stub, []string{"model-a", "model-b"}, 4)

	text, err := svc.GenerateJobProfile(context.Background(), "Data Analyst", "Middle", "")
	require.NoError(t, err)
	require.Equal(t, "profile", text)

	// 非限流非瞬时的错误：当前模型不重试，直接换下一个
	require.Equal(t, []string{"model-a", "model-b"}, stub.models)
	require.Empty(t, *sleeps)
}

func TestGenerateTerminalErrorAfterAllModelsExhausted(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{err: rateLimitErr()},
		{err: fatalErr()},
	}}
	svc, _ := newTestService(stub, []string{"model-a", "model-b"}, 4)

	_, err := svc.GenerateJobProfile(context.Background(), "Data Analyst", "Middle", "")
	require.Error(t, err)

	// 终态错误携带最后一次失败原因
	var apiErr *openai.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatusCode)
	require.Equal(t, []string{"model-a", "model-b"}, stub.models)
}

func TestGenerateTimeoutTreatedAsTransient(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{err: context.DeadlineExceeded},
		{text: "profile"},
	}}
	svc, sleeps := newTestService(stub, []string{"model-a"}, 4)

	text, err := svc.GenerateJobProfile(context.Background(), "Data Analyst", "Middle", "")
	require.NoError(t, err)
	require.Equal(t, "profile", text)
	require.Equal(t, []time.Duration{time.Second}, *sleeps)
}
