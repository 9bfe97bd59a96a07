package client

import (
	"io"
	"os"

	"github.com/tidwall/gjson"
)

// DownloadToFile 下载文件至指定路径，失败时最多重试tryTime次
func DownloadToFile(filename, url string, tryTime int) error {
	c := NewHttpClient(&HttpOptions{TryTime: tryTime})
	return c.DownloadToFile(filename, url)
}

// DownloadToFile 下载文件至指定路径
func (c *HttpClient) DownloadToFile(filename, url string) error {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.ModePerm)
	if err != nil {
		return err
	}
	defer f.Close()
	reader, err := c.GetReader(url)
	if err != nil {
		return err
	}
	defer reader.Close()
	_, err = io.Copy(f, reader)
	return err
}

// GetGJson 通过Get请求快捷获取回包JSON
func GetGJson(url string) (gjson.Result, error) {
	c := NewHttpClient(nil)
	return c.GetGJson(url)
}
