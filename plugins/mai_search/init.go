package mai_search

import (
	"github.com/ZhiheZier/MaimaiDXBot/manager"
	"github.com/ZhiheZier/MaimaiDXBot/plugins/mai_guess"
	"github.com/ZhiheZier/MaimaiDXBot/utils"

	zero "github.com/wdvxdr1123/ZeroBot"
)

var info = manager.PluginInfo{
	Name: "mai查歌",
	Usage: `maimaiDX查歌
用法：
	查歌 [关键词]：按标题搜索乐曲
	定数查歌 [定数] [页数] 或 定数查歌 [下限] [上限] [页数]
	bpm查歌 [bpm] 或 bpm查歌 [下限] [上限] [页数]
	曲师查歌 [曲师名称] [页数]
	谱师查歌 [谱师名称] [页数]
	id [编号]：查询指定曲目
	[xxx]是什么歌：按别名查询曲目`,
}

var proxy *manager.PluginProxy

func init() {
	proxy = manager.RegisterPlugin(info)
	if proxy == nil {
		return
	}
	proxy.OnCommands([]string{"查歌", "search"}).SetBlock(true).SecondPriority().Handle(searchByTitle)
	proxy.OnCommands([]string{"定数查歌", "search base"}).SetBlock(true).SecondPriority().Handle(searchByDS)
	proxy.OnCommands([]string{"bpm查歌", "search bpm"}).SetBlock(true).SecondPriority().Handle(searchByBPM)
	proxy.OnCommands([]string{"曲师查歌", "search artist"}).SetBlock(true).SecondPriority().Handle(searchByArtist)
	proxy.OnCommands([]string{"谱师查歌", "search charter"}).SetBlock(true).SecondPriority().Handle(searchByCharter)
	proxy.OnRegex(`^id\s?([0-9]+)$`).SetBlock(true).SecondPriority().Handle(queryByID)
	proxy.OnRegex(`^(.+)是(什么|啥)歌$`).SetBlock(true).SecondPriority().Handle(searchByAlias)
}

// 本群猜歌期间禁用可能泄露谜底的查歌命令
func cheatGuard(ctx *zero.Ctx) bool {
	if utils.IsMessageGroup(ctx) && mai_guess.Guessing(ctx.Event.GroupID) {
		ctx.Send("本群正在猜歌，不要作弊哦~")
		return true
	}
	return false
}
