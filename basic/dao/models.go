package dao

import (
	"github.com/ZhiheZier/MaimaiDXBot/manager"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserSetting struct {
	ID           int64  `gorm:"primaryKey;autoIncrement:false"`
	BlackPlugins string `gorm:"size:512"` // 黑名单插件
	WhitePlugins string `gorm:"size:512"` // 白名单插件
	Nickname     string // 昵称
}

type GroupSetting struct {
	ID           int64  `gorm:"primaryKey;autoIncrement:false"`
	BlackPlugins string `gorm:"size:512"`
	WhitePlugins string `gorm:"size:512"`
	GuessEnabled bool   `gorm:"default:true"` // 是否允许猜歌
	AliasPush    bool   `gorm:"default:true"` // 是否推送别名投票
}

func init() {
	manager.RegisterModels(&UserSetting{}, &GroupSetting{})
}

// GetGroupSetting 获取群设置，不存在时返回默认值
func GetGroupSetting(db *gorm.DB, groupID int64) GroupSetting {
	setting := GroupSetting{ID: groupID, GuessEnabled: true, AliasPush: true}
	db.Where(&GroupSetting{ID: groupID}).Limit(1).Find(&setting)
	return setting
}

// SaveGroupSetting 保存群设置
func SaveGroupSetting(db *gorm.DB, setting GroupSetting) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&setting).Error
}
