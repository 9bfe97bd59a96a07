package maimai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/utils/client"

	"github.com/tidwall/gjson"
)

// 上游接口地址
const (
	ProberAPI = "https://www.diving-fish.com/api/maimaidxprober"
	AliasAPI  = "https://www.yuzuchan.moe/api/maimaidx"
	CoverAPI  = "https://www.diving-fish.com/covers"
)

var (
	ErrUserNotFound  = errors.New("未找到该玩家，请确保与查分器绑定了正确的QQ号或用户名")
	ErrUserDisabled  = errors.New("该玩家已禁止他人查询成绩")
	ErrAliasNotFound = errors.New("未找到相关别名")
	ErrServer        = errors.New("别名服务器繁忙，请稍后再试")
)

type rawMusic struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	DS        []float64 `json:"ds"`
	Level     []string  `json:"level"`
	Charts    []struct {
		Notes   []int  `json:"notes"`
		Charter string `json:"charter"`
	} `json:"charts"`
	BasicInfo struct {
		Artist  string `json:"artist"`
		Genre   string `json:"genre"`
		BPM     int    `json:"bpm"`
		Version string `json:"from"`
		IsNew   bool   `json:"is_new"`
	} `json:"basic_info"`
}

func (raw rawMusic) toMusic() *Music {
	m := &Music{
		ID:      raw.ID,
		Title:   raw.Title,
		Type:    raw.Type,
		DS:      raw.DS,
		Level:   raw.Level,
		Artist:  raw.BasicInfo.Artist,
		Genre:   raw.BasicInfo.Genre,
		BPM:     raw.BasicInfo.BPM,
		Version: raw.BasicInfo.Version,
		IsNew:   raw.BasicInfo.IsNew,
	}
	for _, c := range raw.Charts {
		chart := Chart{Charter: c.Charter}
		// SD谱面物量为[tap, hold, slide, break]，DX谱面为[tap, hold, slide, touch, break]
		switch len(c.Notes) {
		case 4:
			chart.Notes = Notes{Tap: c.Notes[0], Hold: c.Notes[1], Slide: c.Notes[2], Break: c.Notes[3]}
		case 5:
			chart.Notes = Notes{Tap: c.Notes[0], Hold: c.Notes[1], Slide: c.Notes[2], Touch: c.Notes[3], Break: c.Notes[4]}
		}
		m.Charts = append(m.Charts, chart)
	}
	return m
}

// FetchMusicData 拉取全部乐曲数据
func FetchMusicData() (List, []byte, error) {
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 3, Timeout: 30 * time.Second})
	reader, err := c.GetReader(ProberAPI + "/music_data")
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, err
	}
	list, err := ParseMusicData(data)
	return list, data, err
}

// ParseMusicData 解析乐曲数据JSON
func ParseMusicData(data []byte) (List, error) {
	var raws []rawMusic
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	list := make(List, 0, len(raws))
	for _, raw := range raws {
		list = append(list, raw.toMusic())
	}
	return list, nil
}

// FetchChartStats 拉取谱面统计信息并填充至list
func FetchChartStats(list List) error {
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 3, Timeout: 30 * time.Second})
	res, err := c.GetGJson(ProberAPI + "/chart_stats")
	if err != nil {
		return err
	}
	FillChartStats(list, res)
	return nil
}

// FillChartStats 将chart_stats回包中的统计信息填充至list
func FillChartStats(list List, res gjson.Result) {
	charts := res.Get("charts")
	for _, m := range list {
		stats := charts.Get(m.ID)
		if !stats.Exists() {
			continue
		}
		m.Stats = nil
		for _, s := range stats.Array() {
			stat := ChartStat{
				Count:   s.Get("cnt").Float(),
				FitDiff: s.Get("fit_diff").Float(),
				AvgAch:  s.Get("avg").Float(),
				AvgDX:   s.Get("avg_dx").Float(),
				StdDev:  s.Get("std_dev").Float(),
			}
			for _, d := range s.Get("dist").Array() {
				stat.Dist = append(stat.Dist, d.Float())
			}
			m.Stats = append(m.Stats, stat)
		}
	}
}

// B50Chart b50中的单条成绩
type B50Chart struct {
	SongID       int     `json:"song_id"`
	Title        string  `json:"title"`
	Type         string  `json:"type"`
	Level        string  `json:"level"`
	LevelIndex   int     `json:"level_index"`
	DS           float64 `json:"ds"`
	Achievements float64 `json:"achievements"`
	FC           string  `json:"fc"`
	FS           string  `json:"fs"`
	RA           int     `json:"ra"`
	Rate         string  `json:"rate"`
}

// B50 玩家b50数据
type B50 struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Rating   int    `json:"rating"`
	Charts   struct {
		SD []B50Chart `json:"sd"`
		DX []B50Chart `json:"dx"`
	} `json:"charts"`
}

// FetchB50 查询玩家b50，qq与username二选一
func FetchB50(qq int64, username string) (*B50, error) {
	body := map[string]interface{}{"b50": true}
	if len(username) > 0 {
		body["username"] = username
	} else {
		body["qq"] = fmt.Sprintf("%d", qq)
	}
	data, _ := json.Marshal(body)
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 2, Timeout: 15 * time.Second})
	res, err := c.Post(ProberAPI+"/query/player", "application/json", bytes.NewReader(data))
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
	var b50 B50
	if err = json.Unmarshal(raw, &b50); err != nil {
		return nil, err
	}
	return &b50, nil
}

// RatingRank 排行榜单条记录
type RatingRank struct {
	Username string `json:"username"`
	RA       int    `json:"ra"`
}

// FetchRatingRanking 拉取查分器Rating排行榜（降序）
func FetchRatingRanking() ([]RatingRank, error) {
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 2, Timeout: 15 * time.Second})
	reader, err := c.GetReader(ProberAPI + "/rating_ranking")
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	var ranks []RatingRank
	if err = json.Unmarshal(raw, &ranks); err != nil {
		return nil, err
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].RA > ranks[j].RA })
	return ranks, nil
}
