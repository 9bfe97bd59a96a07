package manager

import (
	bot "github.com/ZhiheZier/MaimaiDXBot"
	"gorm.io/gorm"
)

// 全局初始化
func init() {
	bot.DoPreWorks()
}

// PluginInfo 插件信息
type PluginInfo struct {
	Name        string // Need 插件名称
	Usage       string // Need 插件用法描述
	SuperUsage  string // Option 插件超级用户用法描述
	Classify    string // Option 插件分类，为空时代表默认分类
	IsHidden    bool   // Option 是否为隐藏插件
	IsPassive   bool   // Option 是否为被动插件（由Hook驱动，无需用户调用）
	IsSuperOnly bool   // Option 是否为超级用户专属插件
	AdminLevel  int    // Option 群管理员使用最低级别： 0 表示非群管理员专用插件 >0 表示数字越低，权限要求越高
}

// FlushConfig 从文件中刷新所有插件配置
func FlushConfig(configPath, configFileName string) error {
	return defaultManager.FlushConfig(configPath, configFileName)
}

// SetupDatabase 初始化默认插件管理器的数据库
func SetupDatabase(config DBConfig) error {
	return defaultManager.SetupDatabase(config)
}

// RegisterModels 注册数据库模型，将在数据库初始化完成后统一AutoMigrate
func RegisterModels(models ...interface{}) {
	defaultManager.RegisterModels(models...)
}

// GetDB 获取默认插件管理器的数据库
func GetDB() *gorm.DB {
	return defaultManager.GetDB()
}

// RegisterPlugin 注册一个插件至默认插件管理器，并返回插件代理
func RegisterPlugin(info PluginInfo) *PluginProxy {
	return defaultManager.RegisterPlugin(info)
}

// GetAllPluginConditions 获取所有插件的详细信息
func GetAllPluginConditions() []*PluginCondition {
	return defaultManager.GetAllPluginConditions()
}

// GetPluginConditionByKey 按Key获取插件的详细信息
func GetPluginConditionByKey(key string) *PluginCondition {
	return defaultManager.GetPluginConditionByKey(key)
}

// AddPreHook 添加前置hook
func AddPreHook(hook ...PluginHook) {
	defaultManager.AddPreHook(hook...)
}

// AddPostHook 添加后置hook
func AddPostHook(hook ...PluginHook) {
	defaultManager.AddPostHook(hook...)
}

// WhenConfigFileChange 添加配置文件变更时的hook
func WhenConfigFileChange(hook ...FileHook) {
	defaultManager.WhenConfigFileChange(hook...)
}
