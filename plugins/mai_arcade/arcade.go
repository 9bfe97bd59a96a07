package mai_arcade

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/images"

	log "github.com/sirupsen/logrus"
	zero "github.com/wdvxdr1123/ZeroBot"
)

func addArcade(ctx *zero.Ctx) {
	args := strings.Fields(utils.GetArgs(ctx))
	usage := "格式错误：添加机厅 <店名> <地址> <机台数量> [别名1] [别名2] ..."
	if len(args) < 3 || !utils.IsNumber(args[2]) {
		ctx.Send(usage)
		return
	}
	exists, err := findByFullName(proxy.GetDB(), args[0])
	if err != nil {
		log.Errorf("查询机厅失败: %v", err)
		ctx.Send("失败了...")
		return
	}
	if len(exists) > 0 {
		ctx.Send(fmt.Sprintf("机厅：%s 已存在，无法添加机厅", args[0]))
		return
	}
	num, _ := strconv.Atoi(args[2])
	arcade := Arcade{
		Name:     args[0],
		Location: args[1],
		Num:      num,
		Alias:    strings.Join(args[3:], "|"),
	}
	if err = proxy.GetDB().Create(&arcade).Error; err != nil {
		log.Errorf("添加机厅失败: %v", err)
		ctx.Send("失败了...")
		return
	}
	ctx.Send(fmt.Sprintf("机厅：%s 添加成功", args[0]))
}

func deleteArcade(ctx *zero.Ctx) {
	name := strings.TrimSpace(utils.GetArgs(ctx))
	if len(name) == 0 {
		ctx.Send("格式错误：删除机厅 <店名>，店名需全名")
		return
	}
	exists, err := findByFullName(proxy.GetDB(), name)
	if err != nil {
		log.Errorf("查询机厅失败: %v", err)
		ctx.Send("失败了...")
		return
	}
	if len(exists) == 0 {
		ctx.Send(fmt.Sprintf("未找到机厅：%s", name))
		return
	}
	for _, a := range exists {
		proxy.GetDB().Delete(&ArcadeSub{}, "arcade_id = ?", a.ID)
	}
	if err = proxy.GetDB().Delete(&Arcade{}, "name = ?", name).Error; err != nil {
		log.Errorf("删除机厅失败: %v", err)
		ctx.Send("失败了...")
		return
	}
	ctx.Send(fmt.Sprintf("机厅：%s 删除成功", name))
}

// resolveArcade 按店名或店铺ID定位唯一机厅，找到多个或没有时发送提示并返回nil
func resolveArcade(ctx *zero.Ctx, name string) *Arcade {
	if utils.IsNumber(name) {
		id, _ := strconv.Atoi(name)
		arcade, err := findByID(proxy.GetDB(), uint(id))
		if err != nil || arcade == nil {
			ctx.Send(fmt.Sprintf("未找到机厅：%s", name))
			return nil
		}
		return arcade
	}
	exists, err := findByFullName(proxy.GetDB(), name)
	if err != nil {
		log.Errorf("查询机厅失败: %v", err)
		ctx.Send("失败了...")
		return nil
	}
	switch {
	case len(exists) == 0:
		ctx.Send(fmt.Sprintf("未找到机厅：%s", name))
		return nil
	case len(exists) > 1:
		var sb strings.Builder
		sb.WriteString("找到多个相同店名的机厅，请使用店铺ID操作\n")
		for _, a := range exists {
			sb.WriteString(fmt.Sprintf("%d：%s\n", a.ID, a.Name))
		}
		ctx.Send(strings.TrimRight(sb.String(), "\n"))
		return nil
	}
	return &exists[0]
}

func arcadeAlias(ctx *zero.Ctx) {
	args := strings.Fields(utils.GetArgs(ctx))
	if len(args) != 2 {
		ctx.Send("格式错误：添加/删除机厅别名 <店名> <别名>")
		return
	}
	arcade := resolveArcade(ctx, args[0])
	if arcade == nil {
		return
	}
	isAdd := strings.Contains(ctx.Event.RawMessage, "添加机厅别名")
	aliases := arcade.Aliases()
	if isAdd {
		if arcade.HasAlias(args[1]) {
			ctx.Send(fmt.Sprintf("机厅：%s 已有别名：%s", arcade.Name, args[1]))
			return
		}
		aliases = append(aliases, args[1])
	} else {
		if !arcade.HasAlias(args[1]) {
			ctx.Send(fmt.Sprintf("机厅：%s 没有别名：%s", arcade.Name, args[1]))
			return
		}
		aliases = utils.DeleteStringInSlice(aliases, args[1])
	}
	arcade.Alias = strings.Join(aliases, "|")
	if err := proxy.GetDB().Save(arcade).Error; err != nil {
		log.Errorf("保存机厅别名失败: %v", err)
		ctx.Send("失败了...")
		return
	}
	if isAdd {
		ctx.Send(fmt.Sprintf("已为机厅：%s 添加别名：%s", arcade.Name, args[1]))
	} else {
		ctx.Send(fmt.Sprintf("已删除机厅：%s 的别名：%s", arcade.Name, args[1]))
	}
}

func modifyArcade(ctx *zero.Ctx) {
	if !utils.IsGroupAdmin(ctx) && !utils.IsSuperUser(ctx.Event.UserID) {
		ctx.Send("仅允许管理员修改机厅信息")
		return
	}
	args := strings.Fields(utils.GetArgs(ctx))
	if len(args) != 3 || args[1] != "数量" || !utils.IsNumber(args[2]) {
		ctx.Send("格式错误：修改机厅 <店名> 数量 <数量>")
		return
	}
	arcade := resolveArcade(ctx, args[0])
	if arcade == nil {
		return
	}
	arcade.Num, _ = strconv.Atoi(args[2])
	if err := proxy.GetDB().Save(arcade).Error; err != nil {
		log.Errorf("修改机厅失败: %v", err)
		ctx.Send("失败了...")
		return
	}
	ctx.Send(fmt.Sprintf("机厅：%s 机台数量修改为 %d", arcade.Name, arcade.Num))
}

func subscribeArcade(ctx *zero.Ctx) {
	if !utils.IsGroupAdmin(ctx) {
		ctx.Send("仅允许管理员订阅和取消订阅")
		return
	}
	name := strings.TrimSpace(utils.GetArgs(ctx))
	if len(name) == 0 {
		ctx.Send("格式错误：订阅机厅 <店名> 或 取消订阅机厅 <店名>")
		return
	}
	arcade := resolveArcade(ctx, name)
	if arcade == nil {
		return
	}
	groupID := ctx.Event.GroupID
	isSubscribe := !strings.Contains(ctx.Event.RawMessage, "取消订阅")
	sub := ArcadeSub{GroupID: groupID, ArcadeID: arcade.ID}
	var count int64
	proxy.GetDB().Model(&ArcadeSub{}).Where(&sub).Count(&count)
	if isSubscribe {
		if count > 0 {
			ctx.Send(fmt.Sprintf("本群已订阅机厅：%s", arcade.Name))
			return
		}
		if err := proxy.GetDB().Create(&sub).Error; err != nil {
			log.Errorf("订阅机厅失败: %v", err)
			ctx.Send("失败了...")
			return
		}
		ctx.Send(fmt.Sprintf("订阅机厅：%s 成功", arcade.Name))
	} else {
		if count == 0 {
			ctx.Send(fmt.Sprintf("本群未订阅机厅：%s", arcade.Name))
			return
		}
		if err := proxy.GetDB().Delete(&ArcadeSub{}, "group_id = ? and arcade_id = ?", groupID, arcade.ID).Error; err != nil {
			log.Errorf("取消订阅机厅失败: %v", err)
			ctx.Send("失败了...")
			return
		}
		ctx.Send(fmt.Sprintf("已取消订阅机厅：%s", arcade.Name))
	}
}

func checkSubscribe(ctx *zero.Ctx) {
	arcades, err := groupArcades(proxy.GetDB(), ctx.Event.GroupID)
	if err != nil {
		log.Errorf("查询订阅机厅失败: %v", err)
		ctx.Send("失败了...")
		return
	}
	if len(arcades) == 0 {
		ctx.Send("该群未订阅任何机厅")
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("群%d订阅机厅信息如下：\n", ctx.Event.GroupID))
	for _, a := range arcades {
		sb.WriteString(fmt.Sprintf("店名：%s\n    - 地址：%s\n    - 数量：%d\n    - 别名：%s\n",
			a.Name, a.Location, a.Num, strings.Join(a.Aliases(), " ")))
	}
	ctx.Send(strings.TrimRight(sb.String(), "\n"))
}

func searchArcade(ctx *zero.Ctx) {
	name := strings.TrimSpace(utils.GetArgs(ctx))
	if len(name) == 0 {
		ctx.Send("格式错误：查找机厅 <关键词>")
		return
	}
	arcades, err := searchByName(proxy.GetDB(), name)
	if err != nil {
		log.Errorf("查找机厅失败: %v", err)
		ctx.Send("失败了...")
		return
	}
	if len(arcades) == 0 {
		ctx.Send("没有这样的机厅哦")
		return
	}
	var sb strings.Builder
	sb.WriteString("为您找到以下机厅：\n")
	for _, a := range arcades {
		sb.WriteString(fmt.Sprintf("店名：%s\n    - 地址：%s\n    - ID：%d\n    - 数量：%d\n==========\n",
			a.Name, a.Location, a.ID, a.Num))
	}
	text := strings.TrimRight(sb.String(), "=\n")
	if len(arcades) < 5 {
		ctx.Send(text)
	} else {
		ctx.Send(images.GenStringMsg(text))
	}
}
