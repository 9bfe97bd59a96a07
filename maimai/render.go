package maimai

import (
	"github.com/ZhiheZier/MaimaiDXBot/utils"

	"github.com/wdvxdr1123/ZeroBot/message"
)

// MusicMessage 生成曲目信息消息：封面图+信息卡片
func MusicMessage(m *Music) message.Message {
	msg := make(message.Message, 0, 2)
	if path, err := CoverPath(m.ID); err == nil {
		if cover, err := utils.GetImageFileMsg(path); err == nil {
			msg = append(msg, cover)
		}
	}
	return append(msg, message.Text(m.Card()))
}
