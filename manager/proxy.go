package manager

import (
	"fmt"
	"sync"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/utils"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cast"
	"github.com/syndtr/goleveldb/leveldb"
	zero "github.com/wdvxdr1123/ZeroBot"
	"gorm.io/gorm"
)

// PluginProxy 插件代理，呈现给插件，用于添加事件动作、读写配置、获取插件锁、添加定时任务
// 插件在注册后，应只与此代理交互，与Manager再无交际
type PluginProxy struct {
	key string         // 插件Key
	u   *PluginManager // 所从属的插件管理器

	c     PluginCondition // 插件状态（被管理器控制）
	locks sync.Map        // 插件用户锁
}

// ---- 事件动作 ----

// On 添加新的指定消息类型的匹配器
// zero.Engine.On的附加处理拷贝
func (p *PluginProxy) On(tp string, rules ...zero.Rule) *zero.Matcher {
	rules = p.checkRules(rules...)
	matcher := p.u.engine.On(tp, rules...)
	return matcher
}

// OnCommands 添加新的命令匹配器
func (p *PluginProxy) OnCommands(cmd []string, rules ...zero.Rule) *zero.Matcher {
	rules = p.checkRules(rules...)
	matcher := p.u.engine.OnCommandGroup(cmd, rules...)
	// 检查是否包含Rule：SuperUserPermission
	hasSuper := false
	for _, rule := range rules {
		if utils.IsSameFunc(rule, zero.SuperUserPermission) {
			hasSuper = true
			break
		}
	}
	// 添加命令记录
	if !hasSuper {
		p.c.NormalCmd = append(p.c.NormalCmd, cmd)
	} else {
		p.c.SuperCmd = append(p.c.SuperCmd, cmd)
	}
	return matcher
}

// OnFullMatch 添加新的完全匹配匹配器
func (p *PluginProxy) OnFullMatch(text []string, rules ...zero.Rule) *zero.Matcher {
	rules = p.checkRules(rules...)
	matcher := p.u.engine.OnFullMatchGroup(text, rules...)
	p.c.NormalCmd = append(p.c.NormalCmd, text)
	return matcher
}

// OnRegex 添加新的正则匹配匹配器
func (p *PluginProxy) OnRegex(regex string, rules ...zero.Rule) *zero.Matcher {
	rules = p.checkRules(rules...)
	return p.u.engine.OnRegex(regex, rules...)
}

// OnMessage 添加新的消息事件匹配器
func (p *PluginProxy) OnMessage(rules ...zero.Rule) *zero.Matcher {
	return p.On("message", rules...)
}

// OnNotice 添加新的通知事件匹配器
func (p *PluginProxy) OnNotice(rules ...zero.Rule) *zero.Matcher {
	return p.On("notice", rules...)
}

// OnRequest 添加新的请求事件匹配器
func (p *PluginProxy) OnRequest(rules ...zero.Rule) *zero.Matcher {
	return p.On("request", rules...)
}

// 检查并添加必要的Rule
func (p *PluginProxy) checkRules(rules ...zero.Rule) []zero.Rule {
	// 是否为超级用户专属插件
	if p.c.IsSuperOnly {
		return append(rules, zero.SuperUserPermission)
	}
	return rules
}

// ---- 配置 ----

// AddConfig 添加配置
func (p *PluginProxy) AddConfig(key string, defaultValue interface{}) {
	p.u.addConfig(fmt.Sprintf("plugins.%s", p.key), key, defaultValue)
}

// GetConfig 获取配置
func (p *PluginProxy) GetConfig(key string) interface{} {
	return p.u.getConfig(fmt.Sprintf("plugins.%s", p.key), key)
}

// GetPluginConfig 获取其它插件的配置
func (p *PluginProxy) GetPluginConfig(pluginKey, key string) interface{} {
	return p.u.getConfig(fmt.Sprintf("plugins.%s", pluginKey), key)
}

// GetConfigString 获取String配置
func (p *PluginProxy) GetConfigString(key string) string {
	return cast.ToString(p.GetConfig(key))
}

// GetConfigStrings 获取[]String配置
func (p *PluginProxy) GetConfigStrings(key string) []string {
	return cast.ToStringSlice(p.GetConfig(key))
}

// GetConfigInt64 获取Int64配置
func (p *PluginProxy) GetConfigInt64(key string) int64 {
	return cast.ToInt64(p.GetConfig(key))
}

// GetConfigFloat64 获取Float64配置
func (p *PluginProxy) GetConfigFloat64(key string) float64 {
	return cast.ToFloat64(p.GetConfig(key))
}

// GetConfigBool 获取Bool配置
func (p *PluginProxy) GetConfigBool(key string) bool {
	return cast.ToBool(p.GetConfig(key))
}

// ---- 数据库 ----

// GetDB 获取数据库
func (p *PluginProxy) GetDB() *gorm.DB {
	return p.u.db
}

// GetLevelDB 获取LevelDB: 一个K-V数据库
func (p *PluginProxy) GetLevelDB() *leveldb.DB {
	return p.u.leveldb
}

// ---- 用户锁 ----

// LockUser 尝试获取指定用户的插件锁，返回true表示锁已被他人持有（获取失败）
func (p *PluginProxy) LockUser(userID int64) bool {
	_, loaded := p.locks.LoadOrStore(userID, struct{}{})
	return loaded
}

// UnlockUser 释放指定用户的插件锁
func (p *PluginProxy) UnlockUser(userID int64) {
	p.locks.Delete(userID)
}

// ---- 定时任务 ----

// AddSchedule 添加定时任务
func (p *PluginProxy) AddSchedule(spec string, job cron.Job) (cron.EntryID, error) {
	p.initSchedule()
	id, err := p.c.schedule.AddJob(spec, job)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AddScheduleFunc 添加定时任务函数，spec为cron表达式
func (p *PluginProxy) AddScheduleFunc(spec string, fn func()) (cron.EntryID, error) {
	p.initSchedule()
	id, err := p.c.schedule.AddFunc(spec, fn)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AddScheduleEveryFunc 添加定时任务函数，每间隔duration执行一次，duration格式同time.ParseDuration
func (p *PluginProxy) AddScheduleEveryFunc(duration string, fn func()) (cron.EntryID, error) {
	return p.AddScheduleFunc("@every "+duration, fn)
}

// AddScheduleDailyFunc 添加定时任务函数，每天hour时minute分执行一次
func (p *PluginProxy) AddScheduleDailyFunc(hour, minute int, fn func()) (cron.EntryID, error) {
	return p.AddScheduleFunc(fmt.Sprintf("%d %d * * *", minute, hour), fn)
}

// AddScheduleOnceFunc 添加一次性任务函数，period后执行一次，随即删除
func (p *PluginProxy) AddScheduleOnceFunc(period time.Duration, fn func()) (cron.EntryID, error) {
	p.initSchedule()
	var id cron.EntryID
	id = p.c.schedule.Schedule(onceSchedule{at: time.Now().Add(period)}, cron.FuncJob(func() {
		defer p.DeleteSchedule(id)
		fn()
	}))
	return id, nil
}

// DeleteSchedule 删除指定定时任务
func (p *PluginProxy) DeleteSchedule(id cron.EntryID) {
	if p.c.schedule != nil {
		p.c.schedule.Remove(id)
	}
}

// GetScheduleEntry 获取指定定时任务信息
func (p *PluginProxy) GetScheduleEntry(id cron.EntryID) cron.Entry {
	if p.c.schedule == nil {
		return cron.Entry{}
	}
	return p.c.schedule.Entry(id)
}

// 确保定时任务结构已初始化并启动
func (p *PluginProxy) initSchedule() {
	if p.c.schedule == nil {
		p.c.schedule = cron.New(cron.WithLogger(utils.NewCronLogger()))
	}
	p.c.StartCron()
}

// 单次执行的cron调度：首次返回at，此后返回零值，cron将不再调度
type onceSchedule struct {
	at time.Time
}

func (s onceSchedule) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}
