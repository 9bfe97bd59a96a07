package ban

import (
	"fmt"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/basic/dao"
	"github.com/ZhiheZier/MaimaiDXBot/manager"
	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/images"

	zero "github.com/wdvxdr1123/ZeroBot"
)

// getUsersBlack 获取 用户ID -> 被封插件Key列表
func getUsersBlack() map[int64][]string {
	var users []dao.UserSetting
	proxy.GetDB().Select("id", "black_plugins").Where("LENGTH(black_plugins) > 1").Find(&users)
	res := make(map[int64][]string)
	for _, user := range users {
		if blacks := utils.MergeStringSlices(strings.Split(user.BlackPlugins, "|")); len(blacks) > 0 {
			res[user.ID] = blacks
		}
	}
	return res
}

// getGroupsBlack 获取 群ID -> 被封插件Key列表
func getGroupsBlack() map[int64][]string {
	var groups []dao.GroupSetting
	proxy.GetDB().Select("id", "black_plugins").Where("LENGTH(black_plugins) > 1").Find(&groups)
	res := make(map[int64][]string)
	for _, group := range groups {
		if blacks := utils.MergeStringSlices(strings.Split(group.BlackPlugins, "|")); len(blacks) > 0 {
			res[group.ID] = blacks
		}
	}
	return res
}

func showBlack(ctx *zero.Ctx) {
	if !utils.IsMessageGroup(ctx) {
		if !utils.IsSuperUser(ctx.Event.UserID) || !utils.IsMessagePrimary(ctx) {
			ctx.Send("请在群聊中问我哦")
			return
		}
		// 超级用户私聊时展示全量黑名单
		showBlackInPrimarySuper(ctx)
		return
	}
	// 群聊中仅展示本群成员的黑名单
	var str string
	userM := getUsersBlack()
	users := ctx.GetGroupMemberList(ctx.Event.GroupID).Array()
	for _, user := range users {
		id := user.Get("user_id").Int()
		if userBlack, ok := userM[id]; ok && id != 0 {
			str += fmt.Sprintf("%v(%v %v): %v\n",
				user.Get("nickname"), user.Get("card"), id, formBlackDescription(userBlack))
		}
	}
	if len(str) == 0 {
		ctx.Send("黑名单暂时是空的")
		return
	}
	ctx.SendChain(images.GenStringMsg(str))
}

func showBlackInPrimarySuper(ctx *zero.Ctx) {
	userM := getUsersBlack()
	groupM := getGroupsBlack()
	if len(userM) == 0 && len(groupM) == 0 {
		ctx.Send("黑名单暂时是空的")
		return
	}
	var str string
	if len(userM) > 0 {
		str += "用户：\n"
		for id, blacks := range userM {
			if id == 0 { // ID为0表示全局封禁
				str += fmt.Sprintf("全体: %v\n", formBlackDescription(blacks))
			} else {
				user := ctx.GetStrangerInfo(id, false)
				str += fmt.Sprintf("%v(%v): %v\n", user.Get("nickname"), id, formBlackDescription(blacks))
			}
		}
	}
	if len(groupM) > 0 {
		str += "群：\n"
		for id, blacks := range groupM {
			group := ctx.GetGroupInfo(id, false)
			str += fmt.Sprintf("%v(%v): %v\n", group.Name, id, formBlackDescription(blacks))
		}
	}
	ctx.SendChain(images.GenStringMsg(str))
}

// formBlackDescription 将插件Key列表转为用户可读的功能描述
func formBlackDescription(blacks []string) string {
	var des string
	for i, black := range blacks {
		if black == AllPluginKey {
			des = "全部功能"
			blacks = append(blacks[:i], blacks[i+1:]...)
			break
		}
	}
	if len(blacks) > 0 && len(des) > 0 {
		des += "+"
	}
	for _, black := range blacks {
		plugin := manager.GetPluginConditionByKey(black)
		if plugin == nil {
			continue
		}
		if len(des) > 0 && des[0] != '+' {
			des += "、"
		}
		des += plugin.Name
	}
	return des
}
