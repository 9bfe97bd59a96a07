package mai_table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/images"

	log "github.com/sirupsen/logrus"
	zero "github.com/wdvxdr1123/ZeroBot"
)

// 进度与成绩列表每页显示的谱面数量
const chartsPerPage = 25

func catalogReady(ctx *zero.Ctx) maimai.List {
	list := maimai.Catalog()
	if len(list) == 0 {
		ctx.Send("歌曲数据未加载，请稍后再试或联系管理员")
		return nil
	}
	return list
}

// levelChart 等级内的单个谱面
type levelChart struct {
	music *maimai.Music
	diff  int // 难度序号
	ds    float64
}

// chartsAtLevel 收集等级为level的全部谱面，按定数降序，宴会场谱面除外
func chartsAtLevel(list maimai.List, level string) []levelChart {
	var charts []levelChart
	for _, m := range list {
		if m.IDNum() >= 100000 {
			continue
		}
		for i, lv := range m.Level {
			if lv == level && i < len(m.DS) {
				charts = append(charts, levelChart{music: m, diff: i, ds: m.DS[i]})
			}
		}
	}
	sort.SliceStable(charts, func(i, j int) bool { return charts[i].ds > charts[j].ds })
	return charts
}

// recordKey 谱面在完成记录映射中的键
func recordKey(id, diff int) int {
	return id*5 + diff
}

// recordMap 将完成记录按 曲目ID+难度 索引
func recordMap(records []maimai.PlateRecord) map[int]maimai.PlateRecord {
	res := make(map[int]maimai.PlateRecord, len(records))
	for _, rec := range records {
		res[recordKey(rec.ID, rec.LevelIndex)] = rec
	}
	return res
}

func clampTablePage(page, total int) int {
	max := (total-1)/chartsPerPage + 1
	if max < 1 {
		max = 1
	}
	if page > max {
		page = max
	}
	if page < 1 {
		page = 1
	}
	return page
}

func tablePageSlice(page, total int) (lo, hi int) {
	lo = (page - 1) * chartsPerPage
	hi = page * chartsPerPage
	if hi > total {
		hi = total
	}
	if lo > total {
		lo = total
	}
	return
}

func showRatingTable(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	level := utils.GetRegexpMatched(ctx)[1]
	idx := maimai.LevelIndex(level)
	if idx < 0 {
		ctx.Send("无法识别的定数")
		return
	}
	if idx < 6 {
		ctx.Send("只支持查询lv7-15的定数表")
		return
	}
	rows := ratingTableRows(list, level)
	if len(rows) == 0 {
		ctx.Send("该等级下没有谱面")
		return
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Lv%s 定数表\n", level))
	for _, row := range rows {
		sb.WriteString(row + "\n")
	}
	ctx.Send(images.GenStringMsg(strings.TrimRight(sb.String(), "\n")))
}

// ratingTableRows 按定数降序生成定数表各行，每行为同定数的全部谱面
func ratingTableRows(list maimai.List, level string) []string {
	charts := chartsAtLevel(list, level)
	var rows []string
	var cur float64 = -1
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			rows = append(rows, sb.String())
			sb.Reset()
		}
	}
	for _, c := range charts {
		if c.ds != cur {
			flush()
			cur = c.ds
			sb.WriteString(fmt.Sprintf("「%.1f」", c.ds))
		}
		sb.WriteString(fmt.Sprintf(" %d%s", c.music.IDNum(), maimai.DiffColors[c.diff]))
	}
	flush()
	return rows
}

func showLevelTable(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	matched := utils.GetRegexpMatched(ctx)
	level, plan, username := matched[1], strings.ToLower(matched[2]), strings.TrimSpace(matched[3])
	idx := maimai.LevelIndex(level)
	if idx < 0 {
		ctx.Send("无法识别的等级")
		return
	}
	if idx < 5 {
		ctx.Send("只支持查询lv6-15的完成表")
		return
	}
	records, err := maimai.FetchPlate(ctx.Event.UserID, username, nil)
	if err != nil {
		ctx.Send(err.Error())
		return
	}
	recM := recordMap(records)
	charts := chartsAtLevel(list, level)
	played := 0
	var sb strings.Builder
	for _, c := range charts {
		rec, ok := recM[recordKey(c.music.IDNum(), c.diff)]
		status := "未游玩"
		if ok {
			played++
			if len(plan) > 0 { // 指定连击标准时只展示连击状态
				status = comboStatus(rec.FC)
			} else {
				status = fmt.Sprintf("%.4f%% %s", rec.Achievements, strings.ToUpper(maimai.RateOf(rec.Achievements)))
			}
		}
		sb.WriteString(fmt.Sprintf("「%d」%s[%s %.1f] %s\n",
			c.music.IDNum(), maimai.DiffColors[c.diff], utils.StringLimit(c.music.Title, 20), c.ds, status))
	}
	header := fmt.Sprintf("Lv%s 完成表（已游玩 %d/%d）\n", level, played, len(charts))
	ctx.Send(images.GenStringMsg(header + strings.TrimRight(sb.String(), "\n")))
}

func comboStatus(fc string) string {
	if len(fc) == 0 {
		return "无"
	}
	return strings.ToUpper(fc)
}

func updateTables(ctx *zero.Ctx) {
	if err := maimai.Refresh(); err != nil {
		log.Errorf("更新乐曲数据失败: %v", err)
		ctx.Send("更新失败：" + err.Error())
		return
	}
	ctx.Send("定数表与完成表已更新")
}
