package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// 请求超时
const defaultHTTPTimeout = 5 * time.Second

// 请求头（模拟浏览器）
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptLanguage = "zh-CN,zh;q=0.9,en;q=0.8"
)

// Client 行情接口 HTTP 客户端，带运行期响应缓存
type Client struct {
	http  *http.Client
	cache *ttlCache
}

func NewClient() *Client {
	return &Client{
		http:  &http.Client{Timeout: defaultHTTPTimeout},
		cache: newTTLCache(defaultCacheTTL),
	}
}

// Get 发起 GET 请求，相同 URL 在缓存有效期内只请求一次
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if data, ok := c.cache.Get(url); ok {
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", acceptLanguage)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	c.cache.Set(url, body)
	return body, nil
}

// GetGBK 请求 GBK 编码的接口并转为 UTF-8
func (c *Client) GetGBK(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	raw, err := c.Get(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("gbk decode: %w", err)
	}
	return decoded, nil
}
