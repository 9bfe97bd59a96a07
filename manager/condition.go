package manager

import "github.com/robfig/cron/v3"

// PluginCondition 插件运行状况，Hook只应与此结构交互
type PluginCondition struct {
	Key        string     // 插件Key
	PluginInfo            // 注册时由插件提供，只读
	NormalCmd  [][]string // 普通用户命令集
	SuperCmd   [][]string // 超级用户命令集

	disabled bool       // 是否被全局停用，零值即启用
	schedule *cron.Cron // 本插件的定时任务
}

// Enabled 启用插件，同时恢复其定时任务
func (c *PluginCondition) Enabled() {
	c.disabled = false
	c.StartCron()
}

// Disabled 停用插件，同时停止其定时任务
func (c *PluginCondition) Disabled() {
	c.disabled = true
	c.StopCron()
}

// IsDisabled 插件是否被全局停用
func (c *PluginCondition) IsDisabled() bool {
	return c.disabled
}

// StartCron 开始所有定时任务，插件被停用时不生效
func (c *PluginCondition) StartCron() {
	if c.schedule != nil && !c.disabled {
		c.schedule.Start()
	}
}

// StopCron 停止所有定时任务
func (c *PluginCondition) StopCron() {
	if c.schedule != nil {
		c.schedule.Stop()
	}
}
