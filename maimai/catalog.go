package maimai

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/client"
	"github.com/ZhiheZier/MaimaiDXBot/utils/consts"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

var (
	catalogMutex sync.RWMutex
	catalogList  List
)

// Load 加载乐曲数据：优先读本地缓存，无缓存时从上游拉取
func Load() error {
	if utils.FileExists(consts.MusicDataFile) {
		data, err := os.ReadFile(consts.MusicDataFile)
		if err == nil {
			list, err := ParseMusicData(data)
			if err == nil && len(list) > 0 {
				loadLocalStats(list)
				setCatalog(list)
				log.Infof("已从本地缓存加载%d首乐曲", len(list))
				return nil
			}
		}
		log.Warnf("本地乐曲缓存损坏，将重新拉取: %v", err)
	}
	return Refresh()
}

// Refresh 从上游重新拉取乐曲数据与谱面统计，并写入本地缓存
func Refresh() error {
	list, raw, err := FetchMusicData()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("上游乐曲数据为空")
	}
	if _, err = utils.MakeDir(consts.MaimaiDataDir); err == nil {
		if err = os.WriteFile(consts.MusicDataFile, raw, 0o644); err != nil {
			log.Warnf("写入乐曲缓存失败: %v", err)
		}
	}
	if err = refreshStats(list); err != nil {
		log.Warnf("拉取谱面统计失败: %v", err)
		loadLocalStats(list)
	}
	setCatalog(list)
	log.Infof("乐曲数据更新完成，共%d首", len(list))
	return nil
}

func refreshStats(list List) error {
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 3, Timeout: 30 * time.Second})
	res, err := c.GetGJson(ProberAPI + "/chart_stats")
	if err != nil {
		return err
	}
	_ = os.WriteFile(consts.ChartStatsFile, []byte(res.Raw), 0o644)
	FillChartStats(list, res)
	return nil
}

func loadLocalStats(list List) {
	data, err := os.ReadFile(consts.ChartStatsFile)
	if err != nil {
		return
	}
	FillChartStats(list, gjson.ParseBytes(data))
}

func setCatalog(list List) {
	catalogMutex.Lock()
	defer catalogMutex.Unlock()
	catalogList = list
}

// Catalog 获取当前乐曲列表，调用方不应修改返回值
func Catalog() List {
	catalogMutex.RLock()
	defer catalogMutex.RUnlock()
	return catalogList
}

// HotSongs 按游玩次数取前n首热门乐曲，无统计信息时随机取n首
func HotSongs(n int) List {
	list := Catalog()
	if len(list) == 0 || n <= 0 {
		return nil
	}
	withStats := make(List, 0, len(list))
	for _, m := range list {
		if m.PlayCount() > 0 {
			withStats = append(withStats, m)
		}
	}
	if len(withStats) < n {
		res := make(List, len(list))
		copy(res, list)
		rand.Shuffle(len(res), func(i, j int) { res[i], res[j] = res[j], res[i] })
		if len(res) > n {
			res = res[:n]
		}
		return res
	}
	sort.Slice(withStats, func(i, j int) bool { return withStats[i].PlayCount() > withStats[j].PlayCount() })
	return withStats[:n]
}

// CoverPath 返回乐曲封面本地路径，不存在时自动下载
func CoverPath(id string) (string, error) {
	filename := utils.PathJoin(consts.CoverImageDir, fmt.Sprintf("%05d.png", cast.ToInt(id)))
	if utils.FileExists(filename) {
		return filename, nil
	}
	if _, err := utils.MakeDir(consts.CoverImageDir); err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/%05d.png", CoverAPI, cast.ToInt(id))
	if err := client.DownloadToFile(filename, url, 2); err != nil {
		return "", err
	}
	return filename, nil
}
