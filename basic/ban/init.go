package ban

import (
	"fmt"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/manager"

	zero "github.com/wdvxdr1123/ZeroBot"
)

var proxy *manager.PluginProxy
var info = manager.PluginInfo{
	Name: "功能开关",
	Usage: `
用法：
	*只有本群群管理员在群聊中才可触发*
	开启\关闭[功能] [时长]?：将开启\关闭本群的指定功能，时长为可选项，形式参照示例
	封禁[用户ID] [功能]? [时长]?：封禁指定用户使用指定功能（当指定功能时）或全部功能
	解封[用户ID] [功能]?：解封指定用户使用指定功能
	黑名单：获取所有被封禁用户的被封禁功能列表
示例：
	关闭猜歌：关闭本群的猜歌功能
	封禁123456 猜歌 1h30m：封禁用户ID123456的猜歌功能1小时零30分钟
`,
	SuperUsage: `
用法：
	在私聊中：
		使用开启\关闭[功能] [时长]?命令，将针对所有用户和群开启\关闭该功能（全局Ban）
		还可通过 开启\关闭[群ID] [功能] [时长]? 来开启\关闭指定群的指定功能
		黑名单：获取所有被封禁用户、群的被封禁功能列表
	在群聊中，等同于群管理员执行命令
`,
	AdminLevel: 1,
}

func init() {
	proxy = manager.RegisterPlugin(info)
	if proxy == nil {
		return
	}
	proxy.OnCommands([]string{"开启"}, zero.OnlyToMe).SetBlock(true).FirstPriority().Handle(openPlugin)
	proxy.OnCommands([]string{"关闭"}, zero.OnlyToMe).SetBlock(true).FirstPriority().Handle(closePlugin)
	proxy.OnCommands([]string{"封禁", "ban", "Ban"}, zero.OnlyToMe).SetBlock(true).FirstPriority().Handle(banUser)
	proxy.OnCommands([]string{"解封", "unban", "Unban"}, zero.OnlyToMe).SetBlock(true).FirstPriority().Handle(unbanUser)
	proxy.OnCommands([]string{"黑名单"}, zero.OnlyToMe).SetBlock(true).FirstPriority().Handle(showBlack)
	manager.AddPreHook(checkPluginStatus)
}

// AllPluginKey 黑名单中表示全部插件的特殊Key
const AllPluginKey = "all"

// checkPluginStatus 前置hook：依次检查群级、用户级、全局三层开关
func checkPluginStatus(condition *manager.PluginCondition, ctx *zero.Ctx) error {
	if ctx.Event == nil {
		return nil
	}
	if ctx.Event.GroupID != 0 && !GetGroupPluginStatus(ctx.Event.GroupID, condition) {
		return fmt.Errorf("此插件<%v>在此群(%v)已被关闭", condition.Key, ctx.Event.GroupID)
	}
	if ctx.Event.UserID != 0 && !GetUserPluginStatus(ctx.Event.UserID, condition) {
		return fmt.Errorf("此插件<%v>对此用户(%v)已被禁用", condition.Key, ctx.Event.UserID)
	}
	if !GetUserPluginStatus(0, condition) {
		return fmt.Errorf("此插件<%v>已全局禁用", condition.Key)
	}
	return nil
}

// 黑名单以 |key1|key2| 形式存储在一个字符串字段中

func hasPluginKey(org, key string) bool {
	return strings.Contains(org, "|"+key+"|")
}

func addPluginKey(org, key string) string {
	if !strings.HasSuffix(org, "|") {
		org += "|"
	}
	if hasPluginKey(org, key) {
		return org
	}
	return org + key + "|"
}

func delPluginKey(org, key string) string {
	return strings.ReplaceAll(org, "|"+key+"|", "|")
}

// findPluginByName 按插件名或Key查找插件
func findPluginByName(name string) *manager.PluginCondition {
	for _, plugin := range manager.GetAllPluginConditions() {
		if plugin.Name == name || plugin.Key == name {
			return plugin
		}
	}
	return nil
}
