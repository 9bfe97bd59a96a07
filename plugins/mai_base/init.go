package mai_base

import (
	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/manager"

	log "github.com/sirupsen/logrus"
	zero "github.com/wdvxdr1123/ZeroBot"
)

var info = manager.PluginInfo{
	Name: "mai基础",
	Usage: `maimaiDX基础功能
用法：
	帮助maimaiDX：查看指令一览
	项目地址maimaiDX：bot是开源的哦
	今日mai：今日舞萌运势
	来个/随个/给个 [dx/sd/标准][绿黄红紫白][难度]：随机一首指定条件的歌
	mai什么：随机推荐一首歌
	mai什么推分：根据你的b50推荐一首能上分的歌
	查看排名 [页数/名字]：查分器Rating排行榜
	我的排名：我在查分器排行榜中的名次`,
	SuperUsage: `更新maimai数据：重新拉取乐曲与别名数据
每日4:00自动更新乐曲数据`,
}

var proxy *manager.PluginProxy

func init() {
	proxy = manager.RegisterPlugin(info)
	if proxy == nil {
		return
	}
	proxy.OnFullMatch([]string{"帮助maimaiDX", "帮助maimaidx"}).SetBlock(true).SecondPriority().Handle(showHelp)
	proxy.OnFullMatch([]string{"项目地址maimaiDX", "项目地址maimaidx"}).SetBlock(true).SecondPriority().Handle(showRepo)
	proxy.OnFullMatch([]string{"今日mai", "今日舞萌", "今日运势"}).SetBlock(true).SecondPriority().Handle(maiToday)
	proxy.OnRegex(`^[来随给]个((?:dx|sd|标准))?([绿黄红紫白]?)([0-9]+\+?)$`).SetBlock(true).SecondPriority().Handle(randomSong)
	proxy.OnRegex(`.*mai.*什么(.+)?`).SetBlock(true).ThirdPriority().Handle(maiWhat)
	proxy.OnCommands([]string{"查看排名", "查看排行"}).SetBlock(true).SecondPriority().Handle(showRanking)
	proxy.OnFullMatch([]string{"我的排名"}).SetBlock(true).SecondPriority().Handle(showMyRanking)
	proxy.OnFullMatch([]string{"更新maimai数据"}, zero.SuperUserPermission).SetBlock(true).FirstPriority().Handle(updateData)
	// 每日凌晨自动更新乐曲与别名数据
	if _, err := proxy.AddScheduleDailyFunc(4, 0, refreshAll); err != nil {
		log.Errorf("注册每日数据更新任务失败: %v", err)
	}
	go func() {
		if err := maimai.Load(); err != nil {
			log.Errorf("加载乐曲数据失败: %v", err)
		}
		if err := maimai.RefreshAliases(); err != nil {
			log.Errorf("加载别名库失败: %v", err)
		}
	}()
}

func refreshAll() {
	if err := maimai.Refresh(); err != nil {
		log.Errorf("更新乐曲数据失败: %v", err)
	}
	if err := maimai.RefreshAliases(); err != nil {
		log.Errorf("更新别名库失败: %v", err)
	}
}
