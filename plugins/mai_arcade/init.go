package mai_arcade

import (
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/manager"
	"github.com/ZhiheZier/MaimaiDXBot/utils/rules"

	log "github.com/sirupsen/logrus"
	zero "github.com/wdvxdr1123/ZeroBot"
)

var info = manager.PluginInfo{
	Name: "mai排卡",
	Usage: `机厅排卡
用法：
	修改机厅 [店名] 数量 [数量]：（仅管理员）修改机台数量
	订阅机厅 [店名]：（仅管理员）订阅机厅，简化后续指令
	取消订阅机厅 [店名]：（仅管理员）取消群组机厅订阅
	查看订阅：查看群组订阅机厅的信息
	查找机厅 [关键词]：查询对应机厅信息
	[店名/别名]人数 设置/=/加/+/减/- [人数]：操作排卡人数
	[店名/别名]有几人：查看排卡人数
	机厅几人/jtj：查看已订阅机厅排卡人数
每日3:00自动清零排卡人数`,
	SuperUsage: `添加机厅 [店名] [地址] [机台数量] [别名...]
删除机厅 [店名]
添加机厅别名 [店名] [别名]
删除机厅别名 [店名] [别名]`,
}

var proxy *manager.PluginProxy

func init() {
	proxy = manager.RegisterPlugin(info)
	if proxy == nil {
		return
	}
	manager.RegisterModels(&Arcade{}, &ArcadeSub{})
	proxy.OnCommands([]string{"添加机厅", "新增机厅"}, zero.SuperUserPermission).SetBlock(true).FirstPriority().Handle(addArcade)
	proxy.OnCommands([]string{"删除机厅", "移除机厅"}, zero.SuperUserPermission).SetBlock(true).FirstPriority().Handle(deleteArcade)
	proxy.OnCommands([]string{"添加机厅别名", "删除机厅别名"}, zero.SuperUserPermission).SetBlock(true).FirstPriority().Handle(arcadeAlias)
	proxy.OnCommands([]string{"修改机厅", "编辑机厅"}).SetBlock(true).SecondPriority().Handle(modifyArcade)
	proxy.OnCommands([]string{"订阅机厅", "取消订阅机厅"}, rules.OnlyGroupMessage).SetBlock(true).SecondPriority().Handle(subscribeArcade)
	proxy.OnFullMatch([]string{"查看订阅"}, rules.OnlyGroupMessage).SetBlock(true).SecondPriority().Handle(checkSubscribe)
	proxy.OnCommands([]string{"查找机厅", "查询机厅", "机厅查找", "机厅查询"}).SetBlock(true).SecondPriority().Handle(searchArcade)
	proxy.OnFullMatch([]string{"机厅几人", "jtj", "JTJ"}, rules.OnlyGroupMessage).SetBlock(true).SecondPriority().Handle(queryAllPerson)
	proxy.OnRegex(`^(.+)(有多少人|有几人|有几卡|多少人|多少卡|几人|几卡)$`, rules.OnlyGroupMessage).SetBlock(true).ThirdPriority().Handle(queryPerson)
	proxy.OnRegex(`^(.+)?\s?(设置|设定|＝|=|增加|添加|加|＋|\+|减少|降低|减|－|-)\s?([0-9]+|＋|\+|－|-)(人|卡)?$`,
		rules.OnlyGroupMessage).SetBlock(false).ThirdPriority().Handle(updatePerson)
	// 每日凌晨清零全部机厅排卡人数
	if _, err := proxy.AddScheduleDailyFunc(3, 0, dailyReset); err != nil {
		log.Errorf("注册机厅每日清零任务失败: %v", err)
	}
}

func dailyReset() {
	err := proxy.GetDB().Model(&Arcade{}).Where("1 = 1").Updates(map[string]interface{}{
		"person": 0,
		"by":     "自动清零",
		"time":   time.Now().Format("2006-01-02 15:04:05"),
	}).Error
	if err != nil {
		log.Errorf("机厅排卡人数清零失败: %v", err)
		return
	}
	log.Info("maimaiDX排卡数据更新完毕")
}
