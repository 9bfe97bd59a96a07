package mai_table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/images"

	zero "github.com/wdvxdr1123/ZeroBot"
)

// 连击与同步评价，由低到高
var comboRanks = []string{"fc", "fcp", "ap", "app"}
var syncRanks = []string{"fs", "fsp", "fsd", "fsdp"}

func rankIndex(ranks []string, r string) int {
	for i, v := range ranks {
		if v == r {
			return i
		}
	}
	return -1
}

// normalizePlan 将牌子繁体写法归一化
func normalizePlan(plan string) string {
	plan = strings.ReplaceAll(plan, "極", "极")
	return strings.ReplaceAll(plan, "將", "将")
}

// plateAchieved 完成记录是否满足牌子标准
func plateAchieved(rec maimai.PlateRecord, plan string) bool {
	switch plan {
	case "极":
		return len(rec.FC) > 0
	case "将":
		return rec.Achievements >= 100
	case "神":
		return rec.FC == "ap" || rec.FC == "app"
	case "舞舞":
		return rec.FS == "fsd" || rec.FS == "fsdp"
	}
	return false
}

// planAchieved 完成记录是否达到指定评价，plan可为达成率、连击或同步评价
func planAchieved(rec maimai.PlateRecord, plan string) bool {
	if idx := maimai.RateIndex(plan); idx >= 0 {
		return maimai.RateIndex(maimai.RateOf(rec.Achievements)) >= idx
	}
	if idx := rankIndex(comboRanks, plan); idx >= 0 {
		return rankIndex(comboRanks, rec.FC) >= idx
	}
	if idx := rankIndex(syncRanks, plan); idx >= 0 {
		return rankIndex(syncRanks, rec.FS) >= idx
	}
	return false
}

func showPlateProcess(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	matched := utils.GetRegexpMatched(ctx)
	ver, plan, username := matched[1], normalizePlan(matched[2]), strings.TrimSpace(matched[3])
	if ver == "舞" || ver == "霸" {
		ctx.Send("暂不支持查询「舞」系和「霸者」的牌子")
		return
	}
	if ver+plan == "真将" {
		ctx.Send("真系没有真将哦")
		return
	}
	versions, ok := maimai.PlateVersions[ver]
	if !ok {
		ctx.Send("无法识别的牌子")
		return
	}
	if plan != "极" && plan != "将" && plan != "神" && plan != "舞舞" {
		ctx.Send("无法识别的牌子")
		return
	}
	records, err := maimai.FetchPlate(ctx.Event.UserID, username, versions)
	if err != nil {
		ctx.Send(err.Error())
		return
	}
	// 按难度统计 完成数/谱面总数
	total := make([]int, len(maimai.DiffNames))
	for _, m := range list {
		if m.IDNum() >= 100000 || !containsString(versions, m.Version) {
			continue
		}
		for i := range m.Level {
			total[i]++
		}
	}
	done := make([]int, len(maimai.DiffNames))
	for _, rec := range records {
		if rec.LevelIndex < len(done) && plateAchieved(rec, plan) {
			done[rec.LevelIndex]++
		}
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("「%s%s」进度：\n", ver, plan))
	remain := 0
	for i, name := range maimai.DiffNames {
		if total[i] == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s：%d/%d\n", name, done[i], total[i]))
		remain += total[i] - done[i]
	}
	if remain == 0 {
		sb.WriteString("恭喜你，已经完成这个牌子啦！")
	} else {
		sb.WriteString(fmt.Sprintf("共剩余%d个谱面", remain))
	}
	ctx.Send(strings.TrimRight(sb.String(), "\n"))
}

func containsString(src []string, dst string) bool {
	for _, s := range src {
		if s == dst {
			return true
		}
	}
	return false
}

func showLevelProcess(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	matched := utils.GetRegexpMatched(ctx)
	level, plan := matched[1], strings.ToLower(matched[2])
	username := strings.TrimSpace(matched[4])
	page := 1
	if len(matched[3]) > 0 {
		page, _ = strconv.Atoi(matched[3])
	}
	idx := maimai.LevelIndex(level)
	if idx < 0 {
		ctx.Send("无此等级")
		return
	}
	rateIdx := maimai.RateIndex(plan)
	if rateIdx < 0 && rankIndex(comboRanks, plan) < 0 && rankIndex(syncRanks, plan) < 0 {
		ctx.Send("无此评价等级")
		return
	}
	if idx < 11 || (rateIdx >= 0 && rateIdx < 8) {
		ctx.Send("兄啊，有点志向好不好")
		return
	}
	records, err := maimai.FetchPlate(ctx.Event.UserID, username, nil)
	if err != nil {
		ctx.Send(err.Error())
		return
	}
	recM := recordMap(records)
	var unfinished []levelChart
	for _, c := range chartsAtLevel(list, level) {
		rec, ok := recM[recordKey(c.music.IDNum(), c.diff)]
		if ok && planAchieved(rec, plan) {
			continue
		}
		unfinished = append(unfinished, c)
	}
	if len(unfinished) == 0 {
		ctx.Send(fmt.Sprintf("您已完成等级%s的全部「%s」，恭喜！", level, strings.ToUpper(plan)))
		return
	}
	page = clampTablePage(page, len(unfinished))
	lo, hi := tablePageSlice(page, len(unfinished))
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("等级%s「%s」进度：剩余%d个未完成\n", level, strings.ToUpper(plan), len(unfinished)))
	for _, c := range unfinished[lo:hi] {
		status := "未游玩"
		if rec, ok := recM[recordKey(c.music.IDNum(), c.diff)]; ok {
			status = fmt.Sprintf("%.4f%% %s", rec.Achievements, strings.ToUpper(maimai.RateOf(rec.Achievements)))
		}
		sb.WriteString(fmt.Sprintf("「%d」%s[%s %.1f] %s\n",
			c.music.IDNum(), maimai.DiffColors[c.diff], utils.StringLimit(c.music.Title, 20), c.ds, status))
	}
	sb.WriteString(fmt.Sprintf("第「%d」页，共「%d」页。", page, (len(unfinished)-1)/chartsPerPage+1))
	ctx.Send(images.GenStringMsg(strings.TrimRight(sb.String(), "\n")))
}

func showAchievementList(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	matched := utils.GetRegexpMatched(ctx)
	rating := matched[1]
	username := strings.TrimSpace(matched[3])
	page := 1
	if len(matched[2]) > 0 {
		page, _ = strconv.Atoi(matched[2])
	}
	var charts []levelChart
	if strings.Contains(rating, ".") { // 指定定数
		ds, err := strconv.ParseFloat(rating, 64)
		if err != nil {
			ctx.Send("无此等级")
			return
		}
		for _, m := range list.FilterDS(ds, ds) {
			if m.IDNum() >= 100000 {
				continue
			}
			for i, d := range m.DS {
				if d == ds {
					charts = append(charts, levelChart{music: m, diff: i, ds: d})
				}
			}
		}
	} else { // 指定等级
		if maimai.LevelIndex(rating) < 0 {
			ctx.Send("无此等级")
			return
		}
		charts = chartsAtLevel(list, rating)
	}
	if len(charts) == 0 {
		ctx.Send("该等级下没有谱面")
		return
	}
	records, err := maimai.FetchPlate(ctx.Event.UserID, username, nil)
	if err != nil {
		ctx.Send(err.Error())
		return
	}
	recM := recordMap(records)
	type scored struct {
		chart levelChart
		rec   maimai.PlateRecord
	}
	var played []scored
	for _, c := range charts {
		if rec, ok := recM[recordKey(c.music.IDNum(), c.diff)]; ok {
			played = append(played, scored{chart: c, rec: rec})
		}
	}
	if len(played) == 0 {
		ctx.Send("您还没有游玩过该等级的谱面")
		return
	}
	sort.SliceStable(played, func(i, j int) bool { return played[i].rec.Achievements > played[j].rec.Achievements })
	page = clampTablePage(page, len(played))
	lo, hi := tablePageSlice(page, len(played))
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("「%s」分数列表（已游玩%d/%d）\n", rating, len(played), len(charts)))
	for _, s := range played[lo:hi] {
		sb.WriteString(fmt.Sprintf("「%d」%s[%s %.1f] %.4f%% %s\n",
			s.chart.music.IDNum(), maimai.DiffColors[s.chart.diff],
			utils.StringLimit(s.chart.music.Title, 20), s.chart.ds,
			s.rec.Achievements, strings.ToUpper(maimai.RateOf(s.rec.Achievements))))
	}
	sb.WriteString(fmt.Sprintf("第「%d」页，共「%d」页。", page, (len(played)-1)/chartsPerPage+1))
	ctx.Send(images.GenStringMsg(strings.TrimRight(sb.String(), "\n")))
}
