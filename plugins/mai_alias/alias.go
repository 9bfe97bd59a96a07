package mai_alias

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/basic/dao"
	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/images"

	log "github.com/sirupsen/logrus"
	zero "github.com/wdvxdr1123/ZeroBot"
)

func updateAliases(ctx *zero.Ctx) {
	if err := maimai.RefreshAliases(); err != nil {
		log.Errorf("手动更新别名库失败: %v", err)
		ctx.Send("手动更新别名库失败")
		return
	}
	log.Info("手动更新别名库成功")
	ctx.Send("手动更新别名库成功")
}

func showAliases(ctx *zero.Ctx) {
	matched := utils.GetRegexpMatched(ctx)
	if len(matched) < 3 {
		return
	}
	findID := len(matched[1]) > 0
	name := strings.TrimSpace(matched[2])
	notFound := "未找到此歌曲\n可以使用「添加别名」指令给该乐曲添加别名"
	var ids []string
	if findID && utils.IsNumber(name) {
		if len(maimai.AliasesByID(name)) > 0 {
			ids = []string{name}
		}
	} else {
		ids = maimai.SongIDsByAlias(name)
		if len(ids) == 0 && utils.IsNumber(name) && len(maimai.AliasesByID(name)) > 0 {
			ids = []string{name}
		}
	}
	if len(ids) == 0 {
		ctx.Send(notFound)
		return
	}
	if len(ids) > 1 {
		var parts []string
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf("ID：%s\n%s", id, strings.Join(maimai.AliasesByID(id), "\n")))
		}
		ctx.Send(fmt.Sprintf("找到%d个相同别名的曲目：\n", len(ids)) + strings.Join(parts, "\n======\n"))
		return
	}
	aliases := maimai.AliasesByID(ids[0])
	if len(aliases) <= 1 {
		ctx.Send("该曲目没有别名")
		return
	}
	ctx.Send(fmt.Sprintf("该曲目有以下别名：\nID：%s\n%s", ids[0], strings.Join(aliases, "\n")))
}

func addLocalAlias(ctx *zero.Ctx) {
	args := strings.Fields(utils.GetArgs(ctx))
	if len(args) != 2 {
		ctx.Send("参数错误")
		return
	}
	songID, name := args[0], args[1]
	if maimai.Catalog().ByID(songID) == nil {
		ctx.Send(fmt.Sprintf("未找到ID为「%s」的曲目", songID))
		return
	}
	if exist, err := maimai.HasRemoteAlias(songID, name); err == nil && exist {
		ctx.Send(fmt.Sprintf("该曲目的别名「%s」已存在别名服务器", name))
		return
	}
	for _, alias := range maimai.AliasesByID(songID) {
		if strings.EqualFold(alias, name) {
			ctx.Send("本地别名库已存在该别名")
			return
		}
	}
	if err := maimai.AddLocalAlias(songID, name); err != nil {
		log.Errorf("添加本地别名失败: %v", err)
		ctx.Send("添加本地别名失败")
		return
	}
	ctx.Send(fmt.Sprintf("已成功为ID「%s」添加别名「%s」到本地别名库", songID, name))
}

func applyAlias(ctx *zero.Ctx) {
	args := strings.Fields(utils.GetArgs(ctx))
	if len(args) < 2 {
		ctx.Send("参数错误")
		return
	}
	songID := args[0]
	if !utils.IsNumber(songID) {
		ctx.Send("请输入正确的ID")
		return
	}
	name := strings.Join(args[1:], " ")
	if maimai.Catalog().ByID(songID) == nil {
		ctx.Send(fmt.Sprintf("未找到ID为「%s」的曲目", songID))
		return
	}
	if exist, err := maimai.HasRemoteAlias(songID, name); err == nil && exist {
		ctx.Send(fmt.Sprintf("该曲目的别名「%s」已存在别名服务器", name))
		return
	}
	msg, err := maimai.ApplyAlias(songID, name, ctx.Event.UserID, ctx.Event.GroupID)
	if err != nil {
		ctx.Send(err.Error())
		return
	}
	ctx.Send(msg)
}

func agreeAlias(ctx *zero.Ctx) {
	tag := strings.ToUpper(strings.TrimSpace(utils.GetArgs(ctx)))
	if len(tag) == 0 {
		ctx.Send("参数错误")
		return
	}
	msg, err := maimai.AgreeAlias(tag, ctx.Event.UserID)
	if err != nil {
		ctx.Send(err.Error())
		return
	}
	ctx.Send(msg)
}

// 每页显示的投票数量
const votesPerPage = 25

func showVotes(ctx *zero.Ctx) {
	votes, err := maimai.AliasVotes()
	if err != nil {
		ctx.Send(err.Error())
		return
	}
	if len(votes) == 0 {
		ctx.Send("未查询到正在进行的别名投票")
		return
	}
	page := 1
	if args := strings.TrimSpace(utils.GetArgs(ctx)); utils.IsNumber(args) {
		page, _ = strconv.Atoi(args)
	}
	total := len(votes)/votesPerPage + 1
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	lo := (page - 1) * votesPerPage
	hi := page * votesPerPage
	if hi > len(votes) {
		hi = len(votes)
	}
	var sb strings.Builder
	for _, v := range votes[lo:hi] {
		alias := v.ApplyAlias
		if len([]rune(alias)) > 15 {
			alias = string([]rune(alias)[:15]) + "..."
		}
		sb.WriteString(fmt.Sprintf("- %s：\n- ID：%d\n- 别名：%s\n- 票数：%d/%d\n\n", v.Tag, v.SongID, alias, v.AgreeVotes, v.Votes))
	}
	sb.WriteString(fmt.Sprintf("第「%d」页，共「%d」页", page, total))
	ctx.Send(images.GenStringMsg(sb.String()))
}

func switchPush(ctx *zero.Ctx) {
	if !utils.IsGroupAdmin(ctx) {
		ctx.Send("只有群管理员才能开关别名推送哦")
		return
	}
	groupID := ctx.Event.GroupID
	enable := strings.HasPrefix(ctx.Event.RawMessage, "开启")
	setting := dao.GetGroupSetting(proxy.GetDB(), groupID)
	setting.AliasPush = enable
	if err := dao.SaveGroupSetting(proxy.GetDB(), setting); err != nil {
		log.Errorf("保存群%v别名推送开关失败: %v", groupID, err)
		ctx.Send("失败了...")
		return
	}
	if enable {
		ctx.Send("已开启本群别名推送")
	} else {
		ctx.Send("已关闭本群别名推送")
	}
}
