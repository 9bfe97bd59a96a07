package ban

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/manager"
	"github.com/ZhiheZier/MaimaiDXBot/utils"

	log "github.com/sirupsen/logrus"
	zero "github.com/wdvxdr1123/ZeroBot"
)

func banUser(ctx *zero.Ctx) {
	dealBanUser(false, ctx)
}

func unbanUser(ctx *zero.Ctx) {
	dealBanUser(true, ctx)
}

// dealBanArgs 解析封禁参数：用户ID [功能名]? [时长]?
func dealBanArgs(ctx *zero.Ctx) (userID int64, plugin *manager.PluginCondition, period time.Duration, err error) {
	args := strings.Split(strings.TrimSpace(utils.GetArgs(ctx)), " ")
	if len(args) == 0 || len(args[0]) == 0 {
		ctx.Send("你倒是告诉我封掉谁呀")
		return 0, nil, 0, fmt.Errorf("no such user")
	}
	userID, err = strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		ctx.Send("用户ID格式不对哦")
		return 0, nil, 0, fmt.Errorf("no such user %v", args[0])
	}
	// 末尾参数可解析为时长时视作时长，否则全部视为功能名
	if len(args) >= 2 {
		if period, err = time.ParseDuration(args[len(args)-1]); err != nil {
			period = 0
		} else {
			args = args[:len(args)-1]
		}
	}
	if len(args) >= 2 {
		if plugin = findPluginByName(args[len(args)-1]); plugin == nil {
			ctx.Send(fmt.Sprintf("没有叫%v的功能哦，可以看看帮助", args[len(args)-1]))
			return 0, nil, period, fmt.Errorf("no such plugin %v", args[len(args)-1])
		}
	}
	return
}

// checkBanPermission 检查发送者是否有权在当前会话中封禁指定用户
func checkBanPermission(ctx *zero.Ctx, userID int64) bool {
	if utils.IsMessagePrimary(ctx) { // 私聊中仅超级用户可用
		if !utils.IsSuperUser(ctx.Event.UserID) {
			ctx.Send("请在群聊中封禁/解封功能哦，或者联系管理员")
			return false
		}
		return true
	}
	if !utils.IsGroupAdmin(ctx) {
		ctx.Send("只有群管理员才能封禁/解封哦")
		return false
	}
	// 群聊中只能封禁本群成员
	res := ctx.GetGroupMemberInfo(ctx.Event.GroupID, userID, true)
	if res.Get("group_id").Int() != ctx.Event.GroupID {
		ctx.Send("这谁啊？")
		return false
	}
	// 群管理员无权封禁超级用户
	if !utils.IsSuperUser(ctx.Event.UserID) && utils.IsSuperUser(userID) {
		ctx.Send("？")
		return false
	}
	return true
}

func dealBanUser(status bool, ctx *zero.Ctx) {
	userID, plugin, period, err := dealBanArgs(ctx)
	if err != nil {
		log.Errorf("解析封禁参数失败: %v", err)
		return
	}
	if !checkBanPermission(ctx, userID) {
		return
	}
	dealUserPluginStatus(ctx, status, userID, plugin, period)
}
