package mai_search

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/images"

	zero "github.com/wdvxdr1123/ZeroBot"
	"github.com/wdvxdr1123/ZeroBot/message"
)

// 每页显示的曲目数量
const songsPerPage = 25

func catalogReady(ctx *zero.Ctx) maimai.List {
	list := maimai.Catalog()
	if len(list) == 0 {
		ctx.Send("歌曲数据未加载，请稍后再试或联系管理员")
		return nil
	}
	return list
}

func pageFooter(page, total int) string {
	return fmt.Sprintf("第「%d」页，共「%d」页。请使用「id xxxxx」查询指定曲目。", page, total/songsPerPage+1)
}

func clampPage(page, total int) int {
	max := total/songsPerPage + 1
	if page > max {
		page = max
	}
	if page < 1 {
		page = 1
	}
	return page
}

func pageSlice(page, total int) (lo, hi int) {
	lo = (page - 1) * songsPerPage
	hi = page * songsPerPage
	if hi > total {
		hi = total
	}
	if lo > total {
		lo = total
	}
	return
}

func sortByID(list maimai.List) {
	sort.Slice(list, func(i, j int) bool { return list[i].IDNum() < list[j].IDNum() })
}

func searchByTitle(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	name := strings.TrimSpace(utils.GetArgs(ctx))
	if len(name) == 0 {
		ctx.Send("请输入关键词")
		return
	}
	result := list.TitleSearch(name)
	if len(result) == 0 {
		ctx.Send("没有找到这样的乐曲。\n※ 如果是别名请使用「xxx是什么歌」指令来查询哦。")
		return
	}
	if len(result) == 1 {
		ctx.Send(maimai.MusicMessage(result[0]))
		return
	}
	sortByID(result)
	var sb strings.Builder
	lo, hi := pageSlice(1, len(result))
	for _, m := range result[lo:hi] {
		sb.WriteString(fmt.Sprintf("%-7s %s\n", "「"+m.ID+"」", m.Title))
	}
	sb.WriteString(pageFooter(1, len(result)))
	ctx.Send(images.GenStringMsg(sb.String()))
}

// parseDSRange 解析定数查歌参数：「定数」「页数」? 或 「定数下限」「定数上限」「页数」?
func parseDSRange(args []string) (low, high float64, page int, ok bool) {
	page = 1
	var err error
	switch len(args) {
	case 1:
		low, err = strconv.ParseFloat(args[0], 64)
		high = low
	case 2:
		low, err = strconv.ParseFloat(args[0], 64)
		if strings.Contains(args[1], ".") { // 第二个参数带小数点时视作定数上限
			if err == nil {
				high, err = strconv.ParseFloat(args[1], 64)
			}
		} else {
			high = low
			page, _ = strconv.Atoi(args[1])
		}
	case 3:
		low, err = strconv.ParseFloat(args[0], 64)
		if err == nil {
			high, err = strconv.ParseFloat(args[1], 64)
		}
		page, _ = strconv.Atoi(args[2])
	default:
		return 0, 0, 0, false
	}
	if err != nil {
		return 0, 0, 0, false
	}
	return low, high, page, true
}

func searchByDS(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	usage := "命令格式：\n定数查歌 「定数」「页数」\n定数查歌 「定数下限」「定数上限」「页数」"
	low, high, page, ok := parseDSRange(strings.Fields(utils.GetArgs(ctx)))
	if !ok {
		ctx.Send(usage)
		return
	}
	// 按难度逐条展开
	type row struct {
		id    int
		title string
		ds    float64
		diff  string
	}
	var rows []row
	sorted := make(maimai.List, len(list))
	copy(sorted, list)
	sortByID(sorted)
	for _, m := range sorted {
		if m.IDNum() >= 100000 { // 宴会场谱面不参与定数查歌
			continue
		}
		for i, ds := range m.DS {
			if ds >= low && ds <= high {
				rows = append(rows, row{id: m.IDNum(), title: m.Title, ds: ds, diff: maimai.DiffNames[i]})
			}
		}
	}
	if len(rows) == 0 {
		ctx.Send("没有找到这样的乐曲。")
		return
	}
	page = clampPage(page, len(rows))
	lo, hi := pageSlice(page, len(rows))
	var sb strings.Builder
	for _, r := range rows[lo:hi] {
		sb.WriteString(fmt.Sprintf("%-7s%-11s「%.1f」 %s\n", fmt.Sprintf("「%d」", r.id), "「"+r.diff+"」", r.ds, r.title))
	}
	sb.WriteString(pageFooter(page, len(rows)))
	ctx.Send(images.GenStringMsg(sb.String()))
}

// parseBPMRange 解析bpm查歌参数：「bpm」 或 「bpm下限」「bpm上限」「页数」?，
// 两个参数且前者大于后者时，后者视作页数
func parseBPMRange(args []string) (low, high, page int, ok bool) {
	page = 1
	switch len(args) {
	case 1:
		bpm, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, 0, false
		}
		low, high = bpm, bpm
	case 2:
		l, err1 := strconv.Atoi(args[0])
		h, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return 0, 0, 0, false
		}
		low, high = l, h
		if l > h { // 第二个参数实为页数
			page = h
			high = l
		}
	case 3:
		l, err1 := strconv.Atoi(args[0])
		h, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return 0, 0, 0, false
		}
		low, high = l, h
		page, _ = strconv.Atoi(args[2])
	default:
		return 0, 0, 0, false
	}
	return low, high, page, true
}

func searchByBPM(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	if cheatGuard(ctx) {
		return
	}
	usage := "命令格式：\nbpm查歌 「bpm」\nbpm查歌 「bpm下限」「bpm上限」「页数」"
	low, high, page, ok := parseBPMRange(strings.Fields(utils.GetArgs(ctx)))
	if !ok {
		ctx.Send(usage)
		return
	}
	result := list.FilterBPM(low, high)
	if len(result) == 0 {
		ctx.Send("没有找到这样的乐曲。")
		return
	}
	page = clampPage(page, len(result))
	sort.Slice(result, func(i, j int) bool { return result[i].BPM < result[j].BPM })
	lo, hi := pageSlice(page, len(result))
	var sb strings.Builder
	for _, m := range result[lo:hi] {
		sb.WriteString(fmt.Sprintf("%-7s%-9s %s\n", "「"+m.ID+"」", fmt.Sprintf("「BPM %d」", m.BPM), m.Title))
	}
	sb.WriteString(pageFooter(page, len(result)))
	ctx.Send(images.GenStringMsg(sb.String()))
}

// parseNamePage 解析「名称」「页数」?形式的参数
func parseNamePage(args []string) (string, int, bool) {
	switch len(args) {
	case 1:
		return args[0], 1, true
	case 2:
		if !utils.IsNumber(args[1]) {
			return "", 0, false
		}
		page, _ := strconv.Atoi(args[1])
		return args[0], page, true
	default:
		return "", 0, false
	}
}

func searchByArtist(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	if cheatGuard(ctx) {
		return
	}
	name, page, ok := parseNamePage(strings.Fields(utils.GetArgs(ctx)))
	if !ok {
		ctx.Send("命令格式：\n曲师查歌「曲师名称」「页数」")
		return
	}
	result := list.ArtistSearch(name)
	if len(result) == 0 {
		ctx.Send("没有找到这样的乐曲。")
		return
	}
	page = clampPage(page, len(result))
	lo, hi := pageSlice(page, len(result))
	var sb strings.Builder
	for _, m := range result[lo:hi] {
		sb.WriteString(fmt.Sprintf("%-7s「%s」 - %s\n", "「"+m.ID+"」", m.Artist, m.Title))
	}
	sb.WriteString(pageFooter(page, len(result)))
	ctx.Send(images.GenStringMsg(sb.String()))
}

func searchByCharter(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	if cheatGuard(ctx) {
		return
	}
	name, page, ok := parseNamePage(strings.Fields(utils.GetArgs(ctx)))
	if !ok {
		ctx.Send("命令格式：\n谱师查歌「谱师名称」「页数」")
		return
	}
	result := list.CharterSearch(name)
	if len(result) == 0 {
		ctx.Send("没有找到这样的乐曲。")
		return
	}
	page = clampPage(page, len(result))
	lo, hi := pageSlice(page, len(result))
	var sb strings.Builder
	for _, m := range result[lo:hi] {
		var parts []string
		for i, c := range m.Charts {
			if i < len(maimai.DiffNames) && len(c.Charter) > 0 && c.Charter != "-" {
				parts = append(parts, fmt.Sprintf("%-9s「%s」", "「"+maimai.DiffNames[i]+"」", c.Charter))
			}
		}
		sb.WriteString(fmt.Sprintf("%-7s%s %s\n", "「"+m.ID+"」", strings.Join(parts, " "), m.Title))
	}
	sb.WriteString(pageFooter(page, len(result)))
	ctx.Send(images.GenStringMsg(sb.String()))
}

func queryByID(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	matched := utils.GetRegexpMatched(ctx)
	if len(matched) < 2 {
		return
	}
	music := list.ByID(matched[1])
	if music == nil {
		ctx.Send(fmt.Sprintf("未找到ID为「%s」的乐曲", matched[1]))
		return
	}
	ctx.Send(maimai.MusicMessage(music))
}

var idPattern = regexp.MustCompile(`^id([0-9]+)$`)

func searchByAlias(ctx *zero.Ctx) {
	list := catalogReady(ctx)
	if list == nil {
		return
	}
	matched := utils.GetRegexpMatched(ctx)
	if len(matched) < 2 {
		return
	}
	name := strings.ToLower(strings.TrimSpace(matched[1]))
	errMsg := fmt.Sprintf("未找到别名为「%s」的歌曲\n※ 可以使用「添加别名」指令给该乐曲添加别名\n※ 如果是歌名的一部分，请使用「查歌」指令查询哦。", name)
	// 别名
	ids := maimai.SongIDsByAlias(name)
	if len(ids) > 1 {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("找到%d个相同别名的曲目：\n", len(ids)))
		for _, id := range ids {
			if m := list.ByID(id); m != nil {
				sb.WriteString(fmt.Sprintf("%s：%s\n", id, m.Title))
			}
		}
		sb.WriteString("※ 请使用「id xxxxx」查询指定曲目")
		ctx.Send(sb.String())
		return
	}
	if len(ids) == 1 {
		if m := list.ByID(ids[0]); m != nil {
			ctx.Send(append(message.Message{message.Text("您要找的是不是：")}, maimai.MusicMessage(m)...))
			return
		}
	}
	// id
	if utils.IsNumber(name) {
		if m := list.ByID(name); m != nil {
			ctx.Send(append(message.Message{message.Text("您要找的是不是：")}, maimai.MusicMessage(m)...))
			return
		}
	}
	if sub := idPattern.FindStringSubmatch(name); len(sub) > 1 {
		if m := list.ByID(sub[1]); m != nil {
			ctx.Send(append(message.Message{message.Text("您要找的是不是：")}, maimai.MusicMessage(m)...))
			return
		}
	}
	// 标题
	result := list.TitleSearch(name)
	switch {
	case len(result) == 0:
		ctx.Send(errMsg)
	case len(result) == 1:
		ctx.Send(append(message.Message{message.Text("您要找的是不是：")}, maimai.MusicMessage(result[0])...))
	case len(result) < 50:
		sortByID(result)
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("未找到别名为「%s」的歌曲，但找到「%d」个相似标题的曲目：\n", name, len(result)))
		for _, m := range result {
			sb.WriteString(fmt.Sprintf("%-7s %s\n", "「"+m.ID+"」", m.Title))
		}
		sb.WriteString("请使用「id xxxxx」查询指定曲目。")
		ctx.Send(sb.String())
	default:
		ctx.Send(fmt.Sprintf("结果过多「%d」条，请缩小查询范围。", len(result)))
	}
}
