package mai_alias

import (
	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/manager"
	"github.com/ZhiheZier/MaimaiDXBot/utils/rules"

	zero "github.com/wdvxdr1123/ZeroBot"
)

var info = manager.PluginInfo{
	Name: "mai别名",
	Usage: `maimaiDX乐曲别名
用法：
	[xxx]有什么别名：查询曲目别名
	添加本地别名 [id] [别名]：向本地别名库添加别名
	添加别名 [id] [别名]：向别名服务器申请新别名，需投票通过
	同意别名 [标签]：为别名申请投票
	当前投票 [页数]：查看正在进行的别名投票
	开启/关闭别名推送：（仅管理员）本群别名申请推送开关`,
	SuperUsage: `更新别名库：重新拉取别名数据`,
}

var proxy *manager.PluginProxy

func init() {
	proxy = manager.RegisterPlugin(info)
	if proxy == nil {
		return
	}
	proxy.AddConfig("push", true)      // 全局别名推送开关
	proxy.AddConfig("useproxy", false) // 使用别名推送服务器代理地址
	proxy.OnRegex(`^(id)?\s?(.+)\s?有什么别[名称]$`).SetBlock(true).SecondPriority().Handle(showAliases)
	proxy.OnCommands([]string{"添加本地别名", "添加本地别称"}).SetBlock(true).SecondPriority().Handle(addLocalAlias)
	proxy.OnCommands([]string{"添加别名", "增加别名", "增添别名", "添加别称"}).SetBlock(true).SecondPriority().Handle(applyAlias)
	proxy.OnCommands([]string{"同意别名", "同意别称"}).SetBlock(true).SecondPriority().Handle(agreeAlias)
	proxy.OnCommands([]string{"当前投票", "当前别名投票", "当前别称投票"}).SetBlock(true).SecondPriority().Handle(showVotes)
	proxy.OnFullMatch([]string{"开启别名推送", "关闭别名推送", "开启别称推送", "关闭别称推送"},
		rules.OnlyGroupMessage).SetBlock(true).SecondPriority().Handle(switchPush)
	proxy.OnFullMatch([]string{"更新别名库"}, zero.SuperUserPermission).SetBlock(true).FirstPriority().Handle(updateAliases)
	maimai.SetLocalStore(proxy.GetLevelDB())
	go listenPush()
}
