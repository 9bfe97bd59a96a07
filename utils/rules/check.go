package rules

import (
	"github.com/ZhiheZier/MaimaiDXBot/utils"
	zero "github.com/wdvxdr1123/ZeroBot"
)

// CheckDetailType Rule:检查事件DetailType(MessageType/NoticeType/RequestType)
func CheckDetailType(tp string) zero.Rule {
	return func(ctx *zero.Ctx) bool {
		if ctx.Event != nil {
			return ctx.Event.DetailType == tp
		}
		return false
	}
}

// SkipGroupAnonymous Rule:不处理群匿名消息
func SkipGroupAnonymous(ctx *zero.Ctx) bool {
	return !utils.IsGroupAnonymous(ctx)
}

// SkipGuildMessage Rule:不处理频道消息事件
func SkipGuildMessage(ctx *zero.Ctx) bool {
	return !utils.IsMessageGuild(ctx)
}

// OnlyGroupMessage Rule:仅处理群聊消息
func OnlyGroupMessage(ctx *zero.Ctx) bool {
	return utils.IsMessageGroup(ctx)
}

// OnlyGroupAdmin Rule:仅处理群管理员（含群主、超级用户）的消息
func OnlyGroupAdmin(ctx *zero.Ctx) bool {
	return utils.IsGroupAdmin(ctx)
}
