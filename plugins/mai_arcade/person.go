package mai_arcade

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/utils"

	log "github.com/sirupsen/logrus"
	zero "github.com/wdvxdr1123/ZeroBot"
)

func arcadePersonMsg(arcades []Arcade) string {
	var sb strings.Builder
	for _, a := range arcades {
		sb.WriteString(fmt.Sprintf("%s 当前排卡人数：%d", a.Name, a.Person))
		if a.Num > 1 {
			sb.WriteString(fmt.Sprintf("（机台数量：%d，平均每台%.1f人）", a.Num, float64(a.Person)/float64(a.Num)))
		}
		sb.WriteString("\n")
		if len(a.By) > 0 {
			sb.WriteString(fmt.Sprintf("    最后更新：%s 于 %s\n", a.By, a.Time))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func queryAllPerson(ctx *zero.Ctx) {
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
	ctx.Send(arcadePersonMsg(arcades))
}

func queryPerson(ctx *zero.Ctx) {
	matched := utils.GetRegexpMatched(ctx)
	if len(matched) < 2 {
		return
	}
	name := strings.ToLower(strings.TrimSpace(matched[1]))
	if len(name) == 0 {
		// 无店名时查看已订阅机厅
		arcades, err := groupArcades(proxy.GetDB(), ctx.Event.GroupID)
		if err != nil || len(arcades) == 0 {
			ctx.Send("该群未订阅任何机厅，请使用 订阅机厅 <名称> 指令订阅机厅")
			return
		}
		ctx.Send(arcadePersonMsg(arcades))
		return
	}
	arcades, err := searchByName(proxy.GetDB(), name)
	if err != nil {
		log.Errorf("查找机厅失败: %v", err)
		return
	}
	if len(arcades) == 0 {
		ctx.Send("没有这样的机厅哦")
		return
	}
	ctx.Send(arcadePersonMsg(arcades))
}

// applyPersonOp 计算操作后的人数
func applyPersonOp(current int, op, numStr string) (int, bool) {
	var delta int
	switch numStr {
	case "＋", "+":
		delta = 1
	case "－", "-":
		delta = 1
	default:
		n, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, false
		}
		delta = n
	}
	switch op {
	case "设置", "设定", "＝", "=":
		if !utils.IsNumber(numStr) {
			return 0, false
		}
		return delta, true
	case "增加", "添加", "加", "＋", "+":
		return current + delta, true
	case "减少", "降低", "减", "－", "-":
		if current-delta < 0 {
			return 0, false
		}
		return current - delta, true
	}
	return 0, false
}

func updatePerson(ctx *zero.Ctx) {
	matched := utils.GetRegexpMatched(ctx)
	if len(matched) < 4 || len(matched[1]) == 0 {
		return
	}
	name := strings.TrimSpace(matched[1])
	if strings.HasSuffix(name, "人数") {
		name = strings.TrimSuffix(name, "人数")
	} else if strings.HasSuffix(name, "卡") {
		name = strings.TrimSuffix(name, "卡")
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 0 {
		return
	}
	arcades, err := groupArcades(proxy.GetDB(), ctx.Event.GroupID)
	if err != nil {
		log.Errorf("查询订阅机厅失败: %v", err)
		return
	}
	if len(arcades) == 0 {
		return
	}
	var target *Arcade
	for i := range arcades {
		if strings.ToLower(arcades[i].Name) == name || arcades[i].HasAlias(name) {
			target = &arcades[i]
			break
		}
	}
	if target == nil {
		return
	}
	person, ok := applyPersonOp(target.Person, matched[2], matched[3])
	if !ok {
		ctx.Send("请输入正确的数字")
		return
	}
	target.setPerson(person, ctx.CardOrNickName(ctx.Event.UserID))
	if err = proxy.GetDB().Save(target).Error; err != nil {
		log.Errorf("更新排卡人数失败: %v", err)
		ctx.Send("失败了...")
		return
	}
	ctx.Send(fmt.Sprintf("机厅：%s 当前排卡人数设置为 %d", target.Name, target.Person))
}
