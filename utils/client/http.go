package client

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

type HttpClient struct {
	HttpOptions
	client *http.Client
	header http.Header
}

type HttpOptions struct {
	TryTime int
	Timeout time.Duration
}

// NewHttpClient 创建新Http请求器
func NewHttpClient(option *HttpOptions) *HttpClient {
	if option == nil {
		option = new(HttpOptions)
	}
	if option.TryTime == 0 {
		option.TryTime = 1
	}
	if option.Timeout == 0 {
		option.Timeout = 10 * time.Second
	}
	return &HttpClient{
		HttpOptions: *option,
		client:      &http.Client{Timeout: option.Timeout},
		header:      make(http.Header),
	}
}

// SetHeader 设置后续所有请求的请求头
func (c *HttpClient) SetHeader(key, value string) {
	c.header.Set(key, value)
}

func (c *HttpClient) Do(req *http.Request) (*http.Response, error) {
	var res *http.Response
	err := errors.New("TryTime is zero, send no http request")
	if req == nil {
		return nil, errors.New("req is nil")
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	for i := 0; i < c.TryTime; i++ { // 进行指定次数的重试
		res, err = c.client.Do(req)
		if err == nil {
			break
		}
	}
	return res, err
}

func (c *HttpClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.Do(req)
}

func (c *HttpClient) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// GetReader 通过Get请求获取回包Body
func (c *HttpClient) GetReader(url string) (io.ReadCloser, error) {
	res, err := c.Get(url)
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// GetGJson 通过Get请求获取回包JSON
func (c *HttpClient) GetGJson(url string) (gjson.Result, error) {
	reader, err := c.GetReader(url)
	if err != nil {
		return gjson.Result{}, err
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.New("response is not valid json")
	}
	return gjson.ParseBytes(data), nil
}

// PostGJson 通过Post请求发送JSON并获取回包JSON
func (c *HttpClient) PostGJson(url string, body []byte) (gjson.Result, error) {
	res, err := c.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, err
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.New("response is not valid json")
	}
	return gjson.ParseBytes(data), nil
}
