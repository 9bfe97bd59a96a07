package mai_table

import (
	"github.com/ZhiheZier/MaimaiDXBot/manager"

	zero "github.com/wdvxdr1123/ZeroBot"
)

var info = manager.PluginInfo{
	Name: "mai定数表",
	Usage: `maimaiDX定数表与游玩进度，成绩数据来自diving-fish查分器
用法：
	[等级]定数表：查询指定等级的定数表，如「13+定数表」，支持lv7-15
	[等级][fc/fcp/ap/app]?完成表 [用户名]?：查询指定等级的完成表，支持lv6-15
	[牌子][极/将/神/舞舞]进度 [用户名]?：查询牌子进度，如「樱极进度」
	[等级][评价]进度 [页数]? [用户名]?：查询等级内未达成指定评价的谱面，如「14 s+进度」
	[等级/定数]分数列表 [页数]? [用户名]?：查询指定等级或定数的个人成绩列表
	不带用户名时按QQ号查询`,
	SuperUsage: `更新定数表/更新完成表：重新拉取乐曲数据后刷新各表`,
}

var proxy *manager.PluginProxy

func init() {
	proxy = manager.RegisterPlugin(info)
	if proxy == nil {
		return
	}
	proxy.OnRegex(`^([0-9]+\+?)定数表$`).SetBlock(true).SecondPriority().Handle(showRatingTable)
	proxy.OnRegex(`^([0-9]+\+?)(app|fcp|ap|fc)?完成表\s*(.*)$`).SetBlock(true).SecondPriority().Handle(showLevelTable)
	proxy.OnRegex(`^([真超檄橙晓暁桃樱櫻紫堇菫白雪辉輝熊华華爽煌宙星祭祝双舞霸])([极極将將神者舞]舞?)进度\s*(.*)$`).
		SetBlock(true).SecondPriority().Handle(showPlateProcess)
	proxy.OnRegex(`^([0-9]+\+?)\s*(s{1,3}\+?|a{1,3}|b{1,3}|[cd]|fc|fcp|ap|app|fs|fsp|fsd|fsdp)\s*进度\s*([0-9]*)\s*(.*)$`).
		SetBlock(true).SecondPriority().Handle(showLevelProcess)
	proxy.OnRegex(`^([0-9]+\.?[0-9]?\+?)分数列表\s*([0-9]*)\s*(.*)$`).SetBlock(true).SecondPriority().Handle(showAchievementList)
	proxy.OnFullMatch([]string{"更新定数表", "更新完成表"}, zero.SuperUserPermission).SetBlock(true).FirstPriority().Handle(updateTables)
}
