package ban

import (
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/basic/dao"
	"github.com/ZhiheZier/MaimaiDXBot/manager"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"
)

func pluginKeyOf(plugin *manager.PluginCondition) string {
	if plugin == nil { // 为空代表所有插件
		return AllPluginKey
	}
	return plugin.Key
}

// SetUserPluginStatus 设置指定用户的指定插件状态（于数据库），period>0时到期自动恢复
func SetUserPluginStatus(status bool, userID int64, plugin *manager.PluginCondition, period time.Duration) error {
	key := pluginKeyOf(plugin)
	var user dao.UserSetting
	proxy.GetDB().Take(&user, userID)
	user.ID = userID
	if status {
		user.BlackPlugins = delPluginKey(user.BlackPlugins, key)
	} else {
		user.BlackPlugins = addPluginKey(user.BlackPlugins, key)
	}
	if err := proxy.GetDB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"black_plugins"}),
	}).Create(&user).Error; err != nil {
		log.Errorf("更新用户%v插件黑名单失败: %v", userID, err)
		return err
	}
	log.Infof("设置用户%v插件<%v>状态：%v", userID, key, status)
	if period > 0 {
		_, _ = proxy.AddScheduleOnceFunc(period, func() {
			_ = SetUserPluginStatus(!status, userID, plugin, 0)
		})
	}
	return nil
}

// SetGroupPluginStatus 设置指定群的指定插件状态（于数据库），period>0时到期自动恢复
func SetGroupPluginStatus(status bool, groupID int64, plugin *manager.PluginCondition, period time.Duration) error {
	key := pluginKeyOf(plugin)
	var group dao.GroupSetting
	proxy.GetDB().Take(&group, groupID)
	group.ID = groupID
	if status {
		group.BlackPlugins = delPluginKey(group.BlackPlugins, key)
	} else {
		group.BlackPlugins = addPluginKey(group.BlackPlugins, key)
	}
	if err := proxy.GetDB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"black_plugins"}),
	}).Create(&group).Error; err != nil {
		log.Errorf("更新群%v插件黑名单失败: %v", groupID, err)
		return err
	}
	log.Infof("设置群%v插件<%v>状态：%v", groupID, key, status)
	if period > 0 {
		_, _ = proxy.AddScheduleOnceFunc(period, func() {
			_ = SetGroupPluginStatus(!status, groupID, plugin, 0)
		})
	}
	return nil
}

// GetUserPluginStatus 获取用户插件状态（能否使用）
func GetUserPluginStatus(userID int64, plugin *manager.PluginCondition) bool {
	var user dao.UserSetting
	proxy.GetDB().Take(&user, userID)
	return !hasPluginKey(user.BlackPlugins, pluginKeyOf(plugin)) &&
		!hasPluginKey(user.BlackPlugins, AllPluginKey)
}

// GetGroupPluginStatus 获取群插件状态（能否使用）
func GetGroupPluginStatus(groupID int64, plugin *manager.PluginCondition) bool {
	var group dao.GroupSetting
	proxy.GetDB().Take(&group, groupID)
	return !hasPluginKey(group.BlackPlugins, pluginKeyOf(plugin)) &&
		!hasPluginKey(group.BlackPlugins, AllPluginKey)
}
