package mai_score

import (
	"github.com/ZhiheZier/MaimaiDXBot/manager"
)

var info = manager.PluginInfo{
	Name: "mai成绩",
	Usage: `maimaiDX成绩查询，数据来自diving-fish查分器
用法：
	b50 [用户名]：查询b50成绩，不带用户名时按QQ号查询
	minfo [id/曲名/别名]：查询你在指定曲目上的游玩成绩
	ginfo [绿黄红紫白][id/曲名/别名]：查询谱面全局统计信息，默认紫谱
	分数线 [难度+id] [分数线]：计算分数线容错，如「分数线 紫799 100」
	分数线 帮助：查看容错对应表`,
}

var proxy *manager.PluginProxy

func init() {
	proxy = manager.RegisterPlugin(info)
	if proxy == nil {
		return
	}
	proxy.OnCommands([]string{"b50", "B50"}).SetBlock(true).SecondPriority().Handle(showB50)
	proxy.OnCommands([]string{"minfo", "info"}).SetBlock(true).SecondPriority().Handle(showPlayData)
	proxy.OnCommands([]string{"ginfo"}).SetBlock(true).SecondPriority().Handle(showGlobalData)
	proxy.OnCommands([]string{"分数线"}).SetBlock(true).SecondPriority().Handle(showScoreLine)
}
