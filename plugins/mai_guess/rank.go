package mai_guess

import (
	"fmt"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/utils/images"

	log "github.com/sirupsen/logrus"
	zero "github.com/wdvxdr1123/ZeroBot"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GuessWin 群内猜歌获胜次数
type GuessWin struct {
	GroupID int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID  int64 `gorm:"primaryKey;autoIncrement:false"`
	Wins    int64
}

func addWin(groupID, userID int64) {
	win := GuessWin{GroupID: groupID, UserID: userID, Wins: 1}
	err := proxy.GetDB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"wins": gorm.Expr("wins + 1")}),
	}).Create(&win).Error
	if err != nil {
		log.Errorf("记录群%v用户%v猜歌获胜失败: %v", groupID, userID, err)
	}
}

func showRank(ctx *zero.Ctx) {
	var wins []GuessWin
	err := proxy.GetDB().Where("group_id = ?", ctx.Event.GroupID).
		Order("wins desc").Limit(10).Find(&wins).Error
	if err != nil {
		log.Errorf("查询群%v猜歌排行榜失败: %v", ctx.Event.GroupID, err)
		ctx.Send("失败了...")
		return
	}
	if len(wins) == 0 {
		ctx.Send("本群还没有人猜对过歌呢")
		return
	}
	var sb strings.Builder
	sb.WriteString("本群猜歌排行榜：\n")
	for i, win := range wins {
		name := ctx.CardOrNickName(win.UserID)
		sb.WriteString(fmt.Sprintf("%d. %s 猜对%d次\n", i+1, name, win.Wins))
	}
	ctx.Send(images.GenStringMsg(strings.TrimRight(sb.String(), "\n")))
}
