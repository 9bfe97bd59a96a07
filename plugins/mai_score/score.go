package mai_score

import (
	"fmt"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/images"

	"github.com/wcharczuk/go-chart/v2"
	zero "github.com/wdvxdr1123/ZeroBot"
	"github.com/wdvxdr1123/ZeroBot/message"
)

func showB50(ctx *zero.Ctx) {
	username := strings.TrimSpace(utils.GetArgs(ctx))
	b50, err := maimai.FetchB50(ctx.Event.UserID, username)
	if err != nil {
		ctx.Send(err.Error())
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s 的 b50（Rating：%d）\n", b50.Nickname, b50.Rating))
	sb.WriteString("\n==== 旧版本成绩 b35 ====\n")
	writeCharts(&sb, b50.Charts.SD)
	sb.WriteString("\n==== 现行版本成绩 b15 ====\n")
	writeCharts(&sb, b50.Charts.DX)
	ctx.Send(images.GenStringMsg(strings.TrimRight(sb.String(), "\n")))
}

func writeCharts(sb *strings.Builder, charts []maimai.B50Chart) {
	for i, c := range charts {
		sb.WriteString(fmt.Sprintf("%2d. ID.%-5d %s「%s」\n    %.1f  %.4f%%  %s  ra%d\n",
			i+1, c.SongID, maimai.DiffNames[c.LevelIndex], utils.StringLimit(c.Title, 30),
			c.DS, c.Achievements, strings.ToUpper(c.Rate), c.RA))
	}
}

// resolveSong 按id、曲名或别名解析曲目，解析失败时发送提示并返回nil
func resolveSong(ctx *zero.Ctx, args string) *maimai.Music {
	list := maimai.Catalog()
	if len(list) == 0 {
		ctx.Send("歌曲数据未加载，请稍后再试或联系管理员")
		return nil
	}
	if m := list.ByID(args); m != nil {
		return m
	}
	if m := list.ByTitle(args); m != nil {
		return m
	}
	ids := maimai.SongIDsByAlias(args)
	switch {
	case len(ids) == 0:
		ctx.Send("未找到曲目")
		return nil
	case len(ids) > 1:
		var sb strings.Builder
		sb.WriteString("找到相同别名的曲目，请使用以下ID查询：\n")
		for _, id := range ids {
			if m := list.ByID(id); m != nil {
				sb.WriteString(fmt.Sprintf("%s：%s\n", id, m.Title))
			}
		}
		ctx.Send(strings.TrimRight(sb.String(), "\n"))
		return nil
	}
	if m := list.ByID(ids[0]); m != nil {
		return m
	}
	ctx.Send("未找到曲目")
	return nil
}

func showPlayData(ctx *zero.Ctx) {
	args := strings.ToLower(strings.TrimSpace(utils.GetArgs(ctx)))
	if len(args) == 0 {
		ctx.Send("请输入曲目id或曲名")
		return
	}
	music := resolveSong(ctx, args)
	if music == nil {
		return
	}
	b50, err := maimai.FetchB50(ctx.Event.UserID, "")
	if err != nil {
		ctx.Send(err.Error())
		return
	}
	var records []maimai.B50Chart
	for _, c := range append(b50.Charts.SD, b50.Charts.DX...) {
		if c.SongID == music.IDNum() {
			records = append(records, c)
		}
	}
	msg := maimai.MusicMessage(music)
	if len(records) == 0 {
		msg = append(msg, message.Text("\n您的b50中没有此曲目的成绩"))
		ctx.Send(msg)
		return
	}
	var sb strings.Builder
	sb.WriteString("\n您的游玩成绩：\n")
	for _, c := range records {
		sb.WriteString(fmt.Sprintf("%s：%.4f%% %s ra%d\n",
			maimai.DiffNames[c.LevelIndex], c.Achievements, strings.ToUpper(c.Rate), c.RA))
	}
	msg = append(msg, message.Text(strings.TrimRight(sb.String(), "\n")))
	ctx.Send(msg)
}

func showGlobalData(ctx *zero.Ctx) {
	args := strings.ToLower(strings.TrimSpace(utils.GetArgs(ctx)))
	if len(args) == 0 {
		ctx.Send("请输入曲目id或曲名")
		return
	}
	levelIndex := 3 // 默认紫谱
	runes := []rune(args)
	// "绿黄红紫白"中每个字符占3字节
	if idx := strings.IndexRune("绿黄红紫白", runes[0]); idx >= 0 {
		levelIndex = idx / 3
		args = strings.TrimSpace(string(runes[1:]))
		if len(args) == 0 {
			ctx.Send("请输入曲目id或曲名")
			return
		}
	}
	music := resolveSong(ctx, args)
	if music == nil {
		return
	}
	if len(music.Stats) == 0 {
		ctx.Send("该乐曲还没有统计信息")
		return
	}
	if levelIndex >= len(music.DS) {
		ctx.Send("该乐曲没有这个等级")
		return
	}
	if levelIndex >= len(music.Stats) || music.Stats[levelIndex].Count == 0 {
		ctx.Send("该等级没有统计信息")
		return
	}
	stats := music.Stats[levelIndex]
	text := fmt.Sprintf("%s「%s」全局统计\n游玩次数：%.0f\n拟合难度：%.2f\n平均达成率：%.2f%%\n平均 DX 分数：%.1f\n谱面成绩标准差：%.2f",
		music.Title, maimai.DiffNames[levelIndex], stats.Count, stats.FitDiff, stats.AvgAch, stats.AvgDX, stats.StdDev)
	msg := message.Message{message.Text(text)}
	if seg := drawDistChart(fmt.Sprintf("%s [%s]", music.Title, maimai.DiffNames[levelIndex]), stats.Dist); seg != nil {
		msg = append(msg, *seg)
	}
	ctx.Send(msg)
}

// 评级分布柱状图，从左至右为 d 至 sssp
var rateLabels = []string{"d", "c", "b", "bb", "bbb", "a", "aa", "aaa", "s", "sp", "ss", "ssp", "sss", "sssp"}

func drawDistChart(title string, dist []float64) *message.MessageSegment {
	if len(dist) != len(rateLabels) {
		return nil
	}
	values := make([]chart.Value, 0, len(dist))
	for i, v := range dist {
		values = append(values, chart.Value{Label: rateLabels[i], Value: v})
	}
	img := images.NewImageCtxWithBGColor(1000, 500, "white")
	if err := img.FillBarChartDefault(title, values); err != nil {
		return nil
	}
	msg, err := img.GenMessageAuto()
	if err != nil {
		return nil
	}
	return &msg
}
