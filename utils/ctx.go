package utils

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/utils/client"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	zero "github.com/wdvxdr1123/ZeroBot"
	"github.com/wdvxdr1123/ZeroBot/message"
)

func GetArgs(ctx *zero.Ctx) string {
	res, ok := ctx.State["args"]
	if !ok {
		return ""
	}
	return cast.ToString(res)
}

// GetRegexpMatched 获取正则匹配的各个子串
func GetRegexpMatched(ctx *zero.Ctx) []string {
	res, ok := ctx.State["regex_matched"]
	if !ok {
		return nil
	}
	return cast.ToStringSlice(res)
}

// GetQQAvatar 快捷获取QQ头像
func GetQQAvatar(qq int64, size int) (io.Reader, error) {
	c := client.NewHttpClient(&client.HttpOptions{
		Timeout: 3 * time.Second,
		TryTime: 2,
	})
	url1 := fmt.Sprintf("http://q1.qlogo.cn/g?b=qq&nk=%v&s=%v", qq, size)
	url2 := fmt.Sprintf("https://q2.qlogo.cn/headimg_dl?dst_uin=%v&spec=%v", qq, size)
	res, err := c.GetReader(url2) // 尝试q2
	if err != nil {
		res, err = c.GetReader(url1) // 失败则尝试q1
		if err != nil {
			log.Errorf("获取QQ头像失败, err: %v", err)
			return nil, err
		}
	}
	return res, err
}

// GetBotCtx 获取一个全局ctx
func GetBotCtx() *zero.Ctx {
	var res *zero.Ctx
	zero.RangeBot(func(id int64, ctx *zero.Ctx) bool {
		if ctx != nil {
			res = ctx
			return false
		}
		return true
	})
	return res
}

// GetBotConfig 获取机器人配置
func GetBotConfig() zero.Config {
	return zero.BotConfig
}

// GetBotNickname 获取机器人昵称
func GetBotNickname() string {
	nick := GetBotConfig().NickName
	if len(nick) == 0 || len(nick[0]) == 0 {
		return "我"
	}
	return nick[0]
}

// IsSuperUser userID是否为超级用户
func IsSuperUser(userID int64) bool {
	for _, su := range GetBotConfig().SuperUsers {
		if su == userID {
			return true
		}
	}
	return false
}

// IsMessagePrimary 是否为私聊消息
func IsMessagePrimary(ctx *zero.Ctx) bool {
	return ctx.Event != nil && ctx.Event.MessageType == "private"
}

// IsMessageGroup 是否为群聊消息
func IsMessageGroup(ctx *zero.Ctx) bool {
	return ctx.Event != nil && ctx.Event.MessageType == "group"
}

// IsMessageGuild 是否为频道消息
func IsMessageGuild(ctx *zero.Ctx) bool {
	return ctx.Event != nil && ctx.Event.DetailType == "guild"
}

// IsGroupAnonymous 是否为群匿名消息
func IsGroupAnonymous(ctx *zero.Ctx) bool {
	if ctx.Event == nil || ctx.Event.Sender == nil {
		return false
	}
	return IsMessageGroup(ctx) && ctx.Event.Sender.ID == 80000000
}

// IsGroupAdmin 消息发送者是否为群管理员（含群主）或超级用户
func IsGroupAdmin(ctx *zero.Ctx) bool {
	if ctx.Event == nil {
		return false
	}
	if IsSuperUser(ctx.Event.UserID) {
		return true
	}
	if ctx.Event.Sender == nil {
		return false
	}
	return ctx.Event.Sender.Role == "owner" || ctx.Event.Sender.Role == "admin"
}

// SendToSuper 将消息发送给所有后端的所有超级用户
func SendToSuper(message ...message.MessageSegment) {
	supers := GetBotConfig().SuperUsers
	zero.RangeBot(func(id int64, ctx *zero.Ctx) bool {
		for _, userID := range supers {
			ctx.SendPrivateMessage(userID, message)
		}
		return true
	})
}

// GetImageFileMsg 通过本地图片文件路径生成图片消息
func GetImageFileMsg(path string) (message.MessageSegment, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return message.MessageSegment{}, err
	}
	if !FileExists(abs) {
		return message.MessageSegment{}, fmt.Errorf("no such image file: %v", abs)
	}
	return message.Image("file:///" + filepath.ToSlash(abs)), nil
}
