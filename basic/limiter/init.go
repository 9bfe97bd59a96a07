package limiter

import (
	"fmt"
	"sync"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/manager"
	"github.com/ZhiheZier/MaimaiDXBot/utils/consts"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	zero "github.com/wdvxdr1123/ZeroBot"
)

var proxy *manager.PluginProxy
var info = manager.PluginInfo{
	Name:        "插件CD限流",
	Usage:       "防止频繁调用、刷屏；可以通过配置便携地设置CD",
	IsPassive:   true,
	IsSuperOnly: true,
}

var limiters sync.Map // 插件Key -> *PluginLimiter

func init() {
	proxy = manager.RegisterPlugin(info)
	if proxy == nil {
		return
	}
	proxy.AddConfig("globalCD", "350ms")
	proxy.AddConfig("globalBurst", 1)
	manager.AddPreHook(limiterHook)
}

// 获取指定插件的限流器，不存在时按cdStr创建；cdStr变化时更新CD
func pluginLimiter(plugin, cdStr string) *PluginLimiter {
	cd, err := time.ParseDuration(cdStr)
	if err != nil {
		log.Warnf("无法解析<%v>的CD设置%v: %v", plugin, cdStr, err)
		return nil
	}
	v, ok := limiters.Load(plugin)
	if !ok {
		burst := int(proxy.GetConfigInt64("globalBurst"))
		if burst <= 0 {
			burst = 1
		}
		pl := NewPluginLimiter(cd, burst)
		pl.Key = plugin
		log.Infof("创建<%v>的限流器, CD=%v", plugin, cd)
		limiters.Store(plugin, pl)
		return pl
	}
	pl := v.(*PluginLimiter)
	if cd != pl.GetCD() {
		pl.ResetCD(cd)
		log.Infof("已更新<%v>的CD：%v", plugin, cd)
	}
	return pl
}

func limiterHook(condition *manager.PluginCondition, ctx *zero.Ctx) error {
	// 全局限流
	if ctx.Event != nil && ctx.Event.PostType == "message" {
		global := pluginLimiter("limiter", proxy.GetConfigString("globalCD"))
		if global != nil && !global.Allow(ctx.Event.UserID) {
			log.Warnf("limiter：用户%v频率超出全局限流", ctx.Event.UserID)
			return fmt.Errorf("limiter：频率超出全局限流")
		}
	}
	// 插件限流，仅对配置了CD的插件生效
	plCD := cast.ToString(proxy.GetPluginConfig(condition.Key, consts.PluginConfigCDKey))
	if len(plCD) == 0 {
		return nil
	}
	pl := pluginLimiter(condition.Key, plCD)
	if pl != nil && !pl.Allow(ctx.Event.UserID) {
		log.Warnf("limiter：用户%v频率超出<%v>插件限流", ctx.Event.UserID, condition.Key)
		return fmt.Errorf("limiter：频率超出<%v>插件限流", condition.Key)
	}
	return nil
}
