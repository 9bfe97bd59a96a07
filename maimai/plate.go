package maimai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/utils/client"
)

// LevelList 全部谱面等级，自7级起包含+等级
var LevelList = []string{
	"1", "2", "3", "4", "5", "6",
	"7", "7+", "8", "8+", "9", "9+", "10", "10+",
	"11", "11+", "12", "12+", "13", "13+", "14", "14+", "15",
}

// LevelIndex level在LevelList中的下标，非法等级返回-1
func LevelIndex(level string) int {
	for i, l := range LevelList {
		if l == level {
			return i
		}
	}
	return -1
}

// PlateVersions 牌子前缀到乐曲版本名的映射
var PlateVersions = map[string][]string{
	"真": {"maimai", "maimai PLUS"},
	"超": {"maimai GreeN"},
	"檄": {"maimai GreeN PLUS"},
	"橙": {"maimai ORANGE"},
	"晓": {"maimai ORANGE PLUS"},
	"暁": {"maimai ORANGE PLUS"},
	"桃": {"maimai PiNK"},
	"樱": {"maimai PiNK PLUS"},
	"櫻": {"maimai PiNK PLUS"},
	"紫": {"maimai MURASAKi"},
	"堇": {"maimai MURASAKi PLUS"},
	"菫": {"maimai MURASAKi PLUS"},
	"白": {"maimai MiLK"},
	"雪": {"MiLK PLUS"},
	"辉": {"maimai FiNALE"},
	"輝": {"maimai FiNALE"},
	"熊": {"maimai でらっくす"},
	"华": {"maimai でらっくす"},
	"華": {"maimai でらっくす"},
	"爽": {"maimai でらっくす Splash"},
	"煌": {"maimai でらっくす Splash"},
	"宙": {"maimai でらっくす UNiVERSE"},
	"星": {"maimai でらっくす UNiVERSE"},
	"祭": {"maimai でらっくす FESTiVAL"},
	"祝": {"maimai でらっくす FESTiVAL"},
	"双": {"maimai でらっくす BUDDiES"},
}

// 达成率评级，由低到高
var rateNames = []string{"d", "c", "b", "bb", "bbb", "a", "aa", "aaa", "s", "s+", "ss", "ss+", "sss", "sss+"}
var rateLines = []float64{0, 50, 60, 70, 75, 80, 90, 94, 97, 98, 99, 99.5, 100, 100.5}

// RateOf 达成率对应的评级
func RateOf(achievements float64) string {
	for i := len(rateLines) - 1; i >= 0; i-- {
		if achievements >= rateLines[i] {
			return rateNames[i]
		}
	}
	return rateNames[0]
}

// RateIndex 评级在评级序列中的下标，非法评级返回-1
func RateIndex(rate string) int {
	for i, r := range rateNames {
		if r == rate {
			return i
		}
	}
	return -1
}

// PlateRecord 玩家在单个谱面上的完成记录
type PlateRecord struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Type         string  `json:"type"`
	Level        string  `json:"level"`
	LevelIndex   int     `json:"level_index"`
	Achievements float64 `json:"achievements"`
	FC           string  `json:"fc"`
	FS           string  `json:"fs"`
}

// FetchPlate 查询玩家在指定版本下的全部谱面完成记录，qq与username二选一，
// versions为空时查询全部版本
func FetchPlate(qq int64, username string, versions []string) ([]PlateRecord, error) {
	if len(versions) == 0 {
		versions = allVersions()
	}
	body := map[string]interface{}{"version": versions}
	if len(username) > 0 {
		body["username"] = username
	} else {
		body["qq"] = fmt.Sprintf("%d", qq)
	}
	data, _ := json.Marshal(body)
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 2, Timeout: 15 * time.Second})
	res, err := c.Post(ProberAPI+"/query/plate", "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	switch res.StatusCode {
	case http.StatusBadRequest:
		return nil, ErrUserNotFound
	case http.StatusForbidden:
		return nil, ErrUserDisabled
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	var rsp struct {
		VerList []PlateRecord `json:"verlist"`
	}
	if err = json.Unmarshal(raw, &rsp); err != nil {
		return nil, err
	}
	return rsp.VerList, nil
}

// allVersions 当前曲库中出现过的全部版本名
func allVersions() []string {
	var versions []string
	seen := make(map[string]struct{})
	for _, m := range Catalog() {
		if _, ok := seen[m.Version]; ok {
			continue
		}
		seen[m.Version] = struct{}{}
		versions = append(versions, m.Version)
	}
	return versions
}
