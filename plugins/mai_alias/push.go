package mai_alias

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/basic/dao"
	"github.com/ZhiheZier/MaimaiDXBot/maimai"
	"github.com/ZhiheZier/MaimaiDXBot/utils"

	"github.com/RomiChan/websocket"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/wdvxdr1123/ZeroBot/message"
)

// pushStatus 别名服务器推送的一条状态变更
type pushStatus struct {
	Type       string // Apply/End/Approved/Reject
	Tag        string
	SongID     string
	ApplyAlias string
	ApplyUID   int64
	GroupID    int64
}

// listenPush 维持与别名推送服务器的连接，断线后1分钟重连
func listenPush() {
	id := uuid.NewV4()
	for {
		url := fmt.Sprintf("wss://www.yuzuchan.moe/api/maimaidx/ws/%v", id)
		if proxy.GetConfigBool("useproxy") {
			url = fmt.Sprintf("wss://proxy.yuzuchan.xyz/maimaidxaliases/ws/%v", id)
		}
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			log.Errorf("别名推送服务器连接失败，将在1分钟后重试: %v", err)
			time.Sleep(time.Minute)
			continue
		}
		log.Info("别名推送服务器连接成功")
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				log.Warn("别名推送服务器已断开连接，将在1分钟后重新尝试连接")
				_ = conn.Close()
				break
			}
			if string(data) == "Hello" {
				log.Info("别名推送服务器正常运行")
				continue
			}
			if !gjson.ValidBytes(data) {
				continue
			}
			res := gjson.ParseBytes(data)
			status := pushStatus{
				Type:       res.Get("Type").String(),
				Tag:        res.Get("Status.Tag").String(),
				SongID:     res.Get("Status.SongID").String(),
				ApplyAlias: res.Get("Status.ApplyAlias").String(),
				ApplyUID:   res.Get("Status.ApplyUID").Int(),
				GroupID:    res.Get("Status.GroupID").Int(),
			}
			go dealPush(status)
		}
		time.Sleep(time.Minute)
	}
}

func dealPush(status pushStatus) {
	music := maimai.Catalog().ByID(status.SongID)
	if music == nil {
		return
	}
	ctx := utils.GetBotCtx()
	if ctx == nil {
		return
	}
	switch status.Type {
	case "Approved":
		// 通知申请者所在群
		msg := message.Message{
			message.At(status.ApplyUID),
			message.Text(fmt.Sprintf("\n您申请的别名已通过审核\n=================\n%s：\nID：%s\n标题：%s\n别名：%s\n=================\n请使用指令「同意别名 %s」进行投票",
				status.Tag, status.SongID, music.Title, status.ApplyAlias, status.Tag)),
		}
		ctx.SendGroupMessage(status.GroupID, append(msg, maimai.MusicMessage(music)...))
	case "Reject":
		msg := message.Message{
			message.At(status.ApplyUID),
			message.Text(fmt.Sprintf("\n您申请的别名被拒绝\n=================\nID：%s\n标题：%s\n别名：%s",
				status.SongID, music.Title, status.ApplyAlias)),
		}
		ctx.SendGroupMessage(status.GroupID, append(msg, maimai.MusicMessage(music)...))
	case "Apply":
		text := fmt.Sprintf("检测到新的别名申请\n=================\n%s：\nID：%s\n标题：%s\n别名：%s\n浏览 https://www.yuzuchan.moe/vote 查看详情",
			status.Tag, status.SongID, music.Title, status.ApplyAlias)
		broadcast(append(message.Message{message.Text(text)}, maimai.MusicMessage(music)...))
	case "End":
		// 投票结束，刷新别名库后广播
		if err := maimai.RefreshAliases(); err != nil {
			log.Warnf("别名投票结束后刷新别名库失败: %v", err)
		}
		text := fmt.Sprintf("检测到新增别名\n=================\nID：%s\n标题：%s\n别名：%s",
			status.SongID, music.Title, status.ApplyAlias)
		broadcast(append(message.Message{message.Text(text)}, maimai.MusicMessage(music)...))
	}
}

// broadcast 向所有开启别名推送的群发送消息，发送间隔5秒
func broadcast(msg message.Message) {
	if !proxy.GetConfigBool("push") {
		return
	}
	ctx := utils.GetBotCtx()
	if ctx == nil {
		return
	}
	groups := ctx.GetGroupList().Array()
	for _, group := range groups {
		groupID, err := strconv.ParseInt(group.Get("group_id").String(), 10, 64)
		if err != nil {
			continue
		}
		if !dao.GetGroupSetting(proxy.GetDB(), groupID).AliasPush {
			continue
		}
		ctx.SendGroupMessage(groupID, msg)
		time.Sleep(5 * time.Second)
	}
}
