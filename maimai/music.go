package maimai

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var ErrSongNotFound = errors.New("未找到曲目")

// DiffNames 难度名称，下标与谱面难度序号对应
var DiffNames = []string{"Basic", "Advanced", "Expert", "Master", "Re:MASTER"}

// DiffColors 难度颜色简称，下标与谱面难度序号对应
var DiffColors = []string{"绿", "黄", "红", "紫", "白"}

// Notes 谱面物量
type Notes struct {
	Tap   int
	Hold  int
	Slide int
	Touch int // 仅DX谱面
	Break int
}

// Total 物量总数
func (n Notes) Total() int {
	return n.Tap + n.Hold + n.Slide + n.Touch + n.Break
}

// Chart 单个难度的谱面
type Chart struct {
	Notes   Notes
	Charter string
}

// ChartStat 单个难度的谱面统计信息
type ChartStat struct {
	Count   float64   // 游玩次数
	FitDiff float64   // 拟合难度
	AvgAch  float64   // 平均达成率
	AvgDX   float64   // 平均DX分数
	StdDev  float64   // 谱面成绩标准差
	Dist    []float64 // 评级分布
}

// Music 一首乐曲（DX谱面和标准谱面视为两首）
type Music struct {
	ID     string
	Title  string
	Type   string // SD / DX
	DS     []float64
	Level  []string
	Charts []Chart

	Artist  string
	Genre   string
	BPM     int
	Version string
	IsNew   bool

	Stats []ChartStat // 与Charts同长，可能为空
}

// IDNum 曲目数字ID
func (m *Music) IDNum() int {
	id, _ := strconv.Atoi(m.ID)
	return id
}

// PlayCount 全谱面累计游玩次数，无统计信息时为0
func (m *Music) PlayCount() float64 {
	var total float64
	for _, s := range m.Stats {
		total += s.Count
	}
	return total
}

// DSString 所有难度定数，形如 1.0/4.5/7.2/10.1
func (m *Music) DSString() string {
	strs := make([]string, 0, len(m.DS))
	for _, ds := range m.DS {
		strs = append(strs, strconv.FormatFloat(ds, 'f', 1, 64))
	}
	return strings.Join(strs, "/")
}

// Card 曲目信息卡片文本
func (m *Music) Card() string {
	var sb strings.Builder
	sb.WriteString("ID." + m.ID + " - " + m.Title + "\n")
	sb.WriteString("类型：" + m.Type + "\n")
	sb.WriteString("曲师：" + m.Artist + "\n")
	sb.WriteString("分类：" + m.Genre + "\n")
	sb.WriteString("BPM：" + strconv.Itoa(m.BPM) + "\n")
	sb.WriteString("版本：" + m.Version + "\n")
	for i := range m.DS {
		sb.WriteString(DiffNames[i] + " " + m.Level[i] + "(" + strconv.FormatFloat(m.DS[i], 'f', 1, 64) + ")\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// List 乐曲列表
type List []*Music

// ByID 按ID精确查找
func (l List) ByID(id string) *Music {
	for _, m := range l {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// ByTitle 按标题精确查找（不区分大小写）
func (l List) ByTitle(title string) *Music {
	title = strings.ToLower(title)
	for _, m := range l {
		if strings.ToLower(m.Title) == title {
			return m
		}
	}
	return nil
}

// TitleSearch 按标题模糊查找
func (l List) TitleSearch(name string) List {
	name = strings.ToLower(name)
	var res List
	for _, m := range l {
		title := strings.ToLower(m.Title)
		if strings.Contains(title, name) || fuzzy.Match(name, title) {
			res = append(res, m)
		}
	}
	return res
}

// ArtistSearch 按曲师模糊查找
func (l List) ArtistSearch(name string) List {
	name = strings.ToLower(name)
	var res List
	for _, m := range l {
		artist := strings.ToLower(m.Artist)
		if strings.Contains(artist, name) || fuzzy.Match(name, artist) {
			res = append(res, m)
		}
	}
	return res
}

// CharterSearch 按谱师模糊查找
func (l List) CharterSearch(name string) List {
	name = strings.ToLower(name)
	var res List
	for _, m := range l {
		for _, c := range m.Charts {
			charter := strings.ToLower(c.Charter)
			if strings.Contains(charter, name) || fuzzy.Match(name, charter) {
				res = append(res, m)
				break
			}
		}
	}
	return res
}

// FilterDS 筛选任一难度定数在[low, high]区间内的乐曲
func (l List) FilterDS(low, high float64) List {
	var res List
	for _, m := range l {
		for _, ds := range m.DS {
			if ds >= low && ds <= high {
				res = append(res, m)
				break
			}
		}
	}
	return res
}

// FilterLevel 筛选任一难度等级为level的乐曲，diff为难度序号限制（空则不限）
func (l List) FilterLevel(level string, diff []int, types []string) List {
	var res List
	for _, m := range l {
		if len(types) > 0 && !containString(types, m.Type) {
			continue
		}
		if len(diff) > 0 {
			for _, d := range diff {
				if d < len(m.Level) && (level == "" || m.Level[d] == level) {
					res = append(res, m)
					break
				}
			}
			continue
		}
		if level == "" {
			res = append(res, m)
			continue
		}
		for _, lv := range m.Level {
			if lv == level {
				res = append(res, m)
				break
			}
		}
	}
	return res
}

// FilterBPM 筛选BPM在[low, high]区间内的乐曲
func (l List) FilterBPM(low, high int) List {
	var res List
	for _, m := range l {
		if m.BPM >= low && m.BPM <= high {
			res = append(res, m)
		}
	}
	return res
}

// Random 随机取一首，列表为空时返回nil
func (l List) Random() *Music {
	if len(l) == 0 {
		return nil
	}
	return l[rand.Intn(len(l))]
}

func containString(src []string, dst string) bool {
	for _, s := range src {
		if s == dst {
			return true
		}
	}
	return false
}
