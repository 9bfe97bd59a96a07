package mai_score

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/images"

	zero "github.com/wdvxdr1123/ZeroBot"
)

const scoreLineHelp = `此功能为查找某首歌分数线设计。
命令格式：分数线「难度+歌曲id」「分数线」
例如：分数线 紫799 100
命令将返回分数线允许的「TAP」「GREAT」容错，
以及「BREAK」50落等价的「TAP」「GREAT」数。
以下为「TAP」「GREAT」的对应表：
        GREAT / GOOD / MISS
TAP         1 / 2.5  / 5
HOLD        2 / 5    / 10
SLIDE       3 / 7.5  / 15
TOUCH       1 / 2.5  / 5
BREAK       5 / 12.5 / 25 (外加200落)`

var scoreLinePattern = regexp.MustCompile(`([绿黄红紫白])\s?([0-9]+)`)

// ScoreLineResult 分数线容错计算结果
type ScoreLineResult struct {
	TotalScore    int     // 谱面总分值
	TapGreats     float64 // 允许的最多TAP GREAT数
	TapGreatCost  float64 // 每个TAP GREAT扣除的达成率
	BreakCount    int     // BREAK数量
	Break50Equal  float64 // BREAK 50落等价的TAP GREAT数
	Break50Reduce float64 // BREAK 50落扣除的达成率
}

// CalcScoreLine 按目标分数线计算容错，line取值范围(0, 101)
func CalcScoreLine(notes maimai.Notes, line float64) (ScoreLineResult, error) {
	reduce := 101 - line
	if reduce <= 0 || reduce >= 101 {
		return ScoreLineResult{}, fmt.Errorf("分数线%v超出范围", line)
	}
	if notes.Break <= 0 {
		return ScoreLineResult{}, fmt.Errorf("谱面物量信息缺失")
	}
	totalScore := notes.Tap*500 + notes.Slide*1500 + notes.Hold*1000 + notes.Touch*500 + notes.Break*2500
	breakBonus := 0.01 / float64(notes.Break)
	break50Reduce := float64(totalScore) * breakBonus / 4
	return ScoreLineResult{
		TotalScore:    totalScore,
		TapGreats:     float64(totalScore) * reduce / 10000,
		TapGreatCost:  10000 / float64(totalScore),
		BreakCount:    notes.Break,
		Break50Equal:  break50Reduce / 100,
		Break50Reduce: break50Reduce / float64(totalScore) * 100,
	}, nil
}

func showScoreLine(ctx *zero.Ctx) {
	args := strings.TrimSpace(utils.GetArgs(ctx))
	if args == "帮助" {
		ctx.Send(images.GenStringMsg(scoreLineHelp))
		return
	}
	failMsg := "格式错误，输入\"分数线 帮助\"以查看帮助信息"
	fields := strings.Fields(args)
	matched := scoreLinePattern.FindStringSubmatch(args)
	if len(fields) == 0 || len(matched) < 3 {
		ctx.Send(failMsg)
		return
	}
	line, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		ctx.Send(failMsg)
		return
	}
	levelIndex := strings.Index("绿黄红紫白", matched[1]) / 3
	music := maimai.Catalog().ByID(matched[2])
	if music == nil || levelIndex >= len(music.Charts) {
		ctx.Send(failMsg)
		return
	}
	result, err := CalcScoreLine(music.Charts[levelIndex].Notes, line)
	if err != nil {
		ctx.Send(failMsg)
		return
	}
	ctx.Send(fmt.Sprintf(
		"%s「%s」\n分数线「%v%%」\n允许的最多「TAP」「GREAT」数量为 \n「%.2f」(每个-%.4f%%),\n「BREAK」50落(一共「%d」个)\n等价于「%.3f」个「TAP」「GREAT」(-%.4f%%)",
		music.Title, maimai.DiffNames[levelIndex], line,
		result.TapGreats, result.TapGreatCost,
		result.BreakCount, result.Break50Equal, result.Break50Reduce))
}
