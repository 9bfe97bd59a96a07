package mai_base

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/images"

	zero "github.com/wdvxdr1123/ZeroBot"
	"github.com/wdvxdr1123/ZeroBot/message"
)

var wmList = []string{"拼机", "推分", "越级", "下埋", "夜勤", "练底力", "练手法", "打旧框", "干饭", "抓绝赞", "收歌"}

// qqHash 按QQ号与日期生成当日固定的伪随机数
func qqHash(qq int64, t time.Time) int64 {
	days := int64(t.Day()) + 31*int64(t.Month()) + 77
	return (days * qq) >> 8
}

func showHelp(ctx *zero.Ctx) {
	ctx.Send(images.GenStringMsg(info.Usage))
}

func showRepo(ctx *zero.Ctx) {
	ctx.Send("项目地址：https://github.com/ZhiheZier/MaimaiDXBot\n求star，求宣传~")
}

func catalogReady(ctx *zero.Ctx) maimai.List {
	list := maimai.Catalog()
	if len(list) == 0 {
		ctx.Send("歌曲数据未加载，请稍后再试或联系管理员")
		return nil
	}
	return list
}

func maiToday(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	h := qqHash(ctx.Event.UserID, time.Now())
	rp := h % 100
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n今日人品值：%d\n", rp))
	v := h
	for i := 0; i < len(wmList); i++ {
		switch v & 3 {
		case 3:
			sb.WriteString("宜 " + wmList[i] + "\n")
		case 0:
			sb.WriteString("忌 " + wmList[i] + "\n")
		}
		v >>= 2
	}
	music := list[int(h%int64(len(list)))]
	sb.WriteString(fmt.Sprintf("%s Bot提醒您：打机时不要大力拍打或滑动哦\n今日推荐歌曲：\n", utils.GetBotNickname()))
	sb.WriteString(fmt.Sprintf("ID.%s - %s\n", music.ID, music.Title))
	sb.WriteString(music.DSString())
	msg := message.Message{message.At(ctx.Event.UserID), message.Text(sb.String())}
	if path, err := maimai.CoverPath(music.ID); err == nil {
		if cover, err := utils.GetImageFileMsg(path); err == nil {
			msg = append(msg, cover)
		}
	}
	ctx.Send(msg)
}

func randomSong(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	matched := utils.GetRegexpMatched(ctx)
	if len(matched) < 4 {
		ctx.Send("随机命令错误，请检查语法")
		return
	}
	var types []string
	switch matched[1] {
	case "dx":
		types = []string{"DX"}
	case "sd", "标准":
		types = []string{"SD"}
	}
	var diff []int
	if len(matched[2]) > 0 {
		idx := strings.Index("绿黄红紫白", matched[2])
		if idx >= 0 {
			// "绿黄红紫白"中每个字符占3字节
			diff = []int{idx / 3}
		}
	}
	result := list.FilterLevel(matched[3], diff, types)
	if len(result) == 0 {
		ctx.Send("没有这样的乐曲哦。")
		return
	}
	ctx.Send(maimai.MusicMessage(result.Random()))
}

func maiWhat(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	music := list.Random()
	matched := utils.GetRegexpMatched(ctx)
	if len(matched) > 1 {
		point := matched[1]
		if strings.Contains(point, "推分") || strings.Contains(point, "上分") || strings.Contains(point, "加分") {
			if m := pickForRating(list, ctx.Event.UserID); m != nil {
				music = m
			}
		}
	}
	ctx.Send(maimai.MusicMessage(music))
}

// pickForRating 根据b50末尾成绩推荐能上分的谱面，失败时返回nil
func pickForRating(list maimai.List, qq int64) *maimai.Music {
	b50, err := maimai.FetchB50(qq, "")
	if err != nil {
		return nil
	}
	charts := b50.Charts.SD
	if rand.Intn(2) == 1 {
		charts = b50.Charts.DX
	}
	if len(charts) == 0 {
		return nil
	}
	// 排除b50中尚未打到100.5%的谱面，只在已出分和未游玩的谱面里推荐
	ignore := make(map[int]struct{})
	for _, c := range charts {
		if c.Achievements < 100.5 {
			ignore[c.SongID] = struct{}{}
		}
	}
	ds := float64(charts[len(charts)-1].RA) / 22.4
	candidates := list.FilterDS(ds, ds+1)
	var filtered maimai.List
	for _, m := range candidates {
		if _, ok := ignore[m.IDNum()]; !ok {
			filtered = append(filtered, m)
		}
	}
	return filtered.Random()
}

func showRanking(ctx *zero.Ctx) {
	args := strings.TrimSpace(utils.GetArgs(ctx))
	page := 1
	name := ""
	if utils.IsNumber(args) {
		page, _ = strconv.Atoi(args)
	} else {
		name = strings.ToLower(args)
	}
	ranks, err := maimai.FetchRatingRanking()
	if err != nil {
		ctx.Send("查分器服务暂时不可用，请稍后再试")
		return
	}
	const perPage = 25
	var sb strings.Builder
	if len(name) > 0 {
		for i, rank := range ranks {
			if strings.ToLower(rank.Username) == name {
				ctx.Send(fmt.Sprintf("「%s」的Rating为「%d」，排名第「%d」名", rank.Username, rank.RA, i+1))
				return
			}
		}
		ctx.Send(fmt.Sprintf("未找到玩家「%s」", name))
		return
	}
	total := len(ranks)/perPage + 1
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	lo := (page - 1) * perPage
	hi := page * perPage
	if hi > len(ranks) {
		hi = len(ranks)
	}
	sb.WriteString("查分器Rating排行榜：\n")
	for i, rank := range ranks[lo:hi] {
		sb.WriteString(fmt.Sprintf("%d. %s：%d\n", lo+i+1, rank.Username, rank.RA))
	}
	sb.WriteString(fmt.Sprintf("第「%d」页，共「%d」页", page, total))
	ctx.Send(images.GenStringMsg(strings.TrimRight(sb.String(), "\n")))
}

func showMyRanking(ctx *zero.Ctx) {
	b50, err := maimai.FetchB50(ctx.Event.UserID, "")
	if err != nil {
		ctx.Send(err.Error())
		return
	}
	ranks, err := maimai.FetchRatingRanking()
	if err != nil {
		ctx.Send("查分器服务暂时不可用，请稍后再试")
		return
	}
	for i, rank := range ranks {
		if rank.Username == b50.Username {
			ctx.Send(fmt.Sprintf("您的Rating为「%d」，排名第「%d」名", rank.RA, i+1))
			return
		}
	}
	ctx.Send("未在排行榜中找到您的记录")
}

func updateData(ctx *zero.Ctx) {
	ctx.Send("开始更新maimai数据，请稍候...")
	if err := maimai.Refresh(); err != nil {
		ctx.Send("更新乐曲数据失败：" + err.Error())
		return
	}
	if err := maimai.RefreshAliases(); err != nil {
		ctx.Send("更新别名库失败：" + err.Error())
		return
	}
	ctx.Send("maimai数据更新完成")
}
