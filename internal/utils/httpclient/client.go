package httpclient

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// New 通用HTTP客户端构建方法（支持代理、超时、默认请求头、自动解压）。
// defaultHeaders 会附加到每个请求上（已显式设置的请求头不覆盖）
func New(timeoutSec int, proxy string, defaultHeaders map[string]string, logger *logrus.Logger) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		IdleConnTimeout:     30 * time.Second,
		DisableCompression:  false,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	// 配置代理
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			logger.WithError(err).WithField("proxy", proxy).Warn("代理地址解析失败，将不使用代理")
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.WithField("proxy", proxy).Info("HTTP客户端已配置代理")
		}
	}

	if timeoutSec <= 0 {
		timeoutSec = 60
	}
	return &http.Client{
		Timeout: time.Duration(timeoutSec) * time.Second,
		Transport: &decoratedTransport{
			transport: transport,
			headers:   defaultHeaders,
			logger:    logger,
		},
	}
}

// decoratedTransport 注入默认请求头并处理gzip解压
type decoratedTransport struct {
	transport http.RoundTripper
	headers   map[string]string
	logger    *logrus.Logger
}

func (d *decoratedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range d.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	req.Header.Add("Accept-Encoding", "gzip")

	resp, err := d.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// 手动加了Accept-Encoding后标准库不再自动解压，这里自己处理
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			d.logger.WithError(err).Warn("gzip解压失败，返回原始响应")
			return resp, nil
		}
		resp.Body = &gzipReadCloser{
			Reader: gzReader,
			closer: resp.Body,
		}
		resp.Header.Del("Content-Encoding")
	}

	return resp, nil
}

// gzipReadCloser 包装io.ReadCloser，Close时同时关闭解压reader与原始响应体
type gzipReadCloser struct {
	*gzip.Reader
	closer io.ReadCloser
}

func (g *gzipReadCloser) Close() error {
	if err := g.Reader.Close(); err != nil {
		return err
	}
	return g.closer.Close()
}
