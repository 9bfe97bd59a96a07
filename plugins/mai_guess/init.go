package mai_guess

import (
	"fmt"

	"github.com/ZhiheZier/MaimaiDXBot/basic/dao"
	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/manager"
	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/images"
	"github.com/ZhiheZier/MaimaiDXBot/utils/rules"

	log "github.com/sirupsen/logrus"
	zero "github.com/wdvxdr1123/ZeroBot"
	"github.com/wdvxdr1123/ZeroBot/message"
)

var info = manager.PluginInfo{
	Name: "mai猜歌",
	Usage: `和大家一起猜歌吧
用法：
	猜歌：我将从热门乐曲中选一首歌，每隔8秒描述它的一个特征
	猜曲绘：展示曲绘的一小块裁切，30秒内作答
	重置猜歌：（仅管理员）强行结束本群当前猜歌
	开启\关闭mai猜歌：（仅管理员）本群猜歌功能开关
	猜歌排行榜：看看群里谁最会猜`,
}

var proxy *manager.PluginProxy
var coordinator *Coordinator

func init() {
	proxy = manager.RegisterPlugin(info)
	if proxy == nil {
		return
	}
	coordinator = NewCoordinator(zeroSender{}, catalogPicker{})
	manager.RegisterModels(&GuessWin{})
	proxy.OnFullMatch([]string{"猜歌"}, rules.OnlyGroupMessage).SetBlock(true).SecondPriority().Handle(startGuess)
	proxy.OnFullMatch([]string{"猜曲绘"}, rules.OnlyGroupMessage).SetBlock(true).SecondPriority().Handle(startGuessCover)
	proxy.OnFullMatch([]string{"重置猜歌"}, rules.OnlyGroupMessage).SetBlock(true).SecondPriority().Handle(resetGuess)
	proxy.OnFullMatch([]string{"开启mai猜歌", "关闭mai猜歌"}, rules.OnlyGroupMessage).SetBlock(true).SecondPriority().Handle(switchGuess)
	proxy.OnFullMatch([]string{"猜歌排行榜"}, rules.OnlyGroupMessage).SetBlock(true).SecondPriority().Handle(showRank)
	proxy.OnMessage(rules.OnlyGroupMessage).SetBlock(false).ThirdPriority().Handle(checkAnswer)
}

// Guessing 群中是否有进行中的猜歌，供查歌类命令防作弊检查
func Guessing(groupID int64) bool {
	return coordinator != nil && coordinator.HasSession(groupID)
}

// zeroSender 通过全局bot连接发送群消息
type zeroSender struct{}

func (zeroSender) SendGroupMessage(groupID int64, msg message.Message) error {
	ctx := utils.GetBotCtx()
	if ctx == nil {
		return fmt.Errorf("暂无可用bot连接")
	}
	if ctx.SendGroupMessage(groupID, msg) == 0 {
		return fmt.Errorf("发送失败")
	}
	return nil
}

// catalogPicker 基于乐曲数据的谜底选取器
type catalogPicker struct{}

func (catalogPicker) PickHotSong() (*maimai.Music, error) {
	return maimai.PickHotSong()
}

func (catalogPicker) BuildHints(m *maimai.Music) [6]string {
	return maimai.BuildHints(m)
}

func (catalogPicker) CropCover(m *maimai.Music) (message.MessageSegment, error) {
	crop, err := maimai.CropCover(m)
	if err != nil {
		return message.MessageSegment{}, err
	}
	img := images.NewImageCtxWithBG(crop.Bounds().Dx(), crop.Bounds().Dy(), crop, 1)
	return img.GenMessageAuto()
}

func (catalogPicker) RenderAnswer(m *maimai.Music) message.Message {
	return maimai.MusicMessage(m)
}

// 从数据库同步群开关状态至协调器
func syncGroupSwitch(groupID int64) {
	setting := dao.GetGroupSetting(proxy.GetDB(), groupID)
	coordinator.SetEnabled(groupID, setting.GuessEnabled)
}

func startGuess(ctx *zero.Ctx) {
	groupID := ctx.Event.GroupID
	syncGroupSwitch(groupID)
	if err := coordinator.Start(groupID); err != nil {
		ctx.Send(err.Error())
	}
}

func startGuessCover(ctx *zero.Ctx) {
	groupID := ctx.Event.GroupID
	syncGroupSwitch(groupID)
	if err := coordinator.StartCover(groupID); err != nil {
		ctx.Send(err.Error())
	}
}

func resetGuess(ctx *zero.Ctx) {
	if !utils.IsGroupAdmin(ctx) {
		ctx.Send("仅允许管理员重置")
		return
	}
	if coordinator.Reset(ctx.Event.GroupID) {
		ctx.Send("已重置该群猜歌")
	} else {
		ctx.Send("该群未处在猜歌状态")
	}
}

func switchGuess(ctx *zero.Ctx) {
	if !utils.IsGroupAdmin(ctx) {
		ctx.Send("仅允许管理员开关")
		return
	}
	groupID := ctx.Event.GroupID
	enable := ctx.Event.RawMessage == "开启mai猜歌"
	setting := dao.GetGroupSetting(proxy.GetDB(), groupID)
	setting.GuessEnabled = enable
	if err := dao.SaveGroupSetting(proxy.GetDB(), setting); err != nil {
		log.Errorf("保存群%v猜歌开关失败: %v", groupID, err)
		ctx.Send("失败了...")
		return
	}
	coordinator.SetEnabled(groupID, enable)
	if enable {
		ctx.Send("已开启该群猜歌功能")
	} else {
		ctx.Send("已关闭该群猜歌功能")
	}
}

func checkAnswer(ctx *zero.Ctx) {
	groupID := ctx.Event.GroupID
	if !coordinator.HasSession(groupID) {
		return
	}
	ans := ctx.Event.Message.ExtractPlainText()
	music, won := coordinator.SubmitAnswer(groupID, ans)
	if !won {
		return
	}
	addWin(groupID, ctx.Event.UserID)
	msg := message.Message{
		message.Text("猜对了，答案是：\n"),
		message.At(ctx.Event.UserID),
		message.Text("\n"),
	}
	msg = append(msg, catalogPicker{}.RenderAnswer(music)...)
	ctx.Send(msg)
}
