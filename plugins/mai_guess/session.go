package mai_guess

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/maimai"

	log "github.com/sirupsen/logrus"
	"github.com/wdvxdr1123/ZeroBot/message"
)

// Mode 猜歌模式
type Mode int

const (
	ModeSong  Mode = iota // 特征提示猜歌
	ModeCover             // 猜曲绘
)

var (
	ErrFeatureDisabled = errors.New("该群已关闭猜歌功能，开启请输入 开启mai猜歌")
	ErrSessionExists   = errors.New("该群已有正在进行的猜歌或猜曲绘")
)

// Sender 群消息发送器
type Sender interface {
	SendGroupMessage(groupID int64, msg message.Message) error
}

// Picker 谜底选取与提示生成器
type Picker interface {
	PickHotSong() (*maimai.Music, error)
	BuildHints(m *maimai.Music) [6]string
	CropCover(m *maimai.Music) (message.MessageSegment, error)
	RenderAnswer(m *maimai.Music) message.Message
}

// Session 单个群的一局猜歌
type Session struct {
	GroupID int64
	Mode    Mode
	Music   *maimai.Music
	Hints   [6]string
	Cover   message.MessageSegment // 开局时裁切好的封面

	ended int32
}

// End 结束本局，返回true表示本次调用抢到了结束权
func (s *Session) End() bool {
	return atomic.CompareAndSwapInt32(&s.ended, 0, 1)
}

// IsEnded 本局是否已结束
func (s *Session) IsEnded() bool {
	return atomic.LoadInt32(&s.ended) == 1
}

// Coordinator 管理所有群的猜歌会话
type Coordinator struct {
	sender Sender
	picker Picker

	// 各阶段间隔，零值使用默认值
	FirstDelay   time.Duration // 开局到首条提示
	HintInterval time.Duration // 相邻提示之间
	PollInterval time.Duration // 封面提示后的答题窗口轮询间隔

	mutex    sync.Mutex
	sessions map[int64]*Session
	disabled map[int64]struct{}
}

func NewCoordinator(sender Sender, picker Picker) *Coordinator {
	return &Coordinator{
		sender:       sender,
		picker:       picker,
		FirstDelay:   4 * time.Second,
		HintInterval: 8 * time.Second,
		PollInterval: time.Second,
		sessions:     make(map[int64]*Session),
		disabled:     make(map[int64]struct{}),
	}
}

// SetEnabled 设置群猜歌开关
func (c *Coordinator) SetEnabled(groupID int64, enable bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if enable {
		delete(c.disabled, groupID)
	} else {
		delete(c.sessions, groupID)
		c.disabled[groupID] = struct{}{}
	}
}

// IsEnabled 群猜歌是否开启
func (c *Coordinator) IsEnabled(groupID int64) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	_, ok := c.disabled[groupID]
	return !ok
}

// GetSession 获取群当前会话，无会话时返回nil
func (c *Coordinator) GetSession(groupID int64) *Session {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.sessions[groupID]
}

// HasSession 群是否有进行中的猜歌
func (c *Coordinator) HasSession(groupID int64) bool {
	return c.GetSession(groupID) != nil
}

func (c *Coordinator) startable(groupID int64) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, ok := c.disabled[groupID]; ok {
		return ErrFeatureDisabled
	}
	if _, ok := c.sessions[groupID]; ok {
		return ErrSessionExists
	}
	return nil
}

// newSession 选曲并裁切封面，全部就绪后才注册会话；任一步失败则本局不存在
func (c *Coordinator) newSession(groupID int64, mode Mode) (*Session, error) {
	if err := c.startable(groupID); err != nil {
		return nil, err
	}
	music, err := c.picker.PickHotSong()
	if err != nil {
		return nil, err
	}
	cover, err := c.picker.CropCover(music)
	if err != nil {
		return nil, err
	}
	session := &Session{GroupID: groupID, Mode: mode, Music: music, Cover: cover}
	if mode == ModeSong {
		session.Hints = c.picker.BuildHints(music)
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, ok := c.disabled[groupID]; ok {
		return nil, ErrFeatureDisabled
	}
	if _, ok := c.sessions[groupID]; ok {
		return nil, ErrSessionExists
	}
	c.sessions[groupID] = session
	return session, nil
}

func (c *Coordinator) removeSession(s *Session) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.sessions[s.GroupID] == s {
		delete(c.sessions, s.GroupID)
	}
}

func (c *Coordinator) send(groupID int64, msg message.Message) {
	if err := c.sender.SendGroupMessage(groupID, msg); err != nil {
		log.Errorf("发送猜歌消息至群%v失败: %v", groupID, err)
	}
}

// Start 开始一局特征提示猜歌
func (c *Coordinator) Start(groupID int64) error {
	session, err := c.newSession(groupID, ModeSong)
	if err != nil {
		return err
	}
	c.send(groupID, message.Message{message.Text(
		"我将从热门乐曲中选择一首歌，每隔8秒描述它的特征，\n" +
			"请输入歌曲的 id 标题 或 别名（需bot支持，无需大小写） 进行猜歌（DX乐谱和标准乐谱视为两首歌）。\n" +
			"猜歌时查歌等其他命令依然可用。")})
	go c.runSong(session)
	return nil
}

// StartCover 开始一局猜曲绘
func (c *Coordinator) StartCover(groupID int64) error {
	session, err := c.newSession(groupID, ModeCover)
	if err != nil {
		return err
	}
	c.send(groupID, message.Message{
		message.Text("以下裁切图片是哪首谱面的曲绘：\n"),
		session.Cover,
		message.Text("\n请在30s内输入答案"),
	})
	go c.runCover(session)
	return nil
}

func (c *Coordinator) runSong(s *Session) {
	time.Sleep(c.FirstDelay)
	for cycle := 0; cycle < 6; cycle++ {
		if !c.alive(s) {
			return
		}
		c.send(s.GroupID, message.Message{message.Text(
			strconv.Itoa(cycle+1) + "/7 " + s.Hints[cycle])})
		time.Sleep(c.HintInterval)
	}
	if !c.alive(s) {
		return
	}
	c.send(s.GroupID, message.Message{
		message.Text("7/7 这首歌封面的一部分是：\n"),
		s.Cover,
		message.Text("\n答案将在30秒后揭晓"),
	})
	c.answerWindow(s)
}

func (c *Coordinator) runCover(s *Session) {
	c.answerWindow(s)
}

// answerWindow 等待30个轮询周期，无人猜中则公布答案
func (c *Coordinator) answerWindow(s *Session) {
	for i := 0; i < 30; i++ {
		time.Sleep(c.PollInterval)
		if !c.alive(s) {
			return
		}
	}
	if !s.End() {
		return
	}
	msg := append(message.Message{message.Text("答案是：\n")}, c.picker.RenderAnswer(s.Music)...)
	c.send(s.GroupID, msg)
	c.removeSession(s)
}

// alive 会话仍在进行中且群开关未关闭
func (c *Coordinator) alive(s *Session) bool {
	if s.IsEnded() {
		return false
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, ok := c.disabled[s.GroupID]; ok {
		return false
	}
	return c.sessions[s.GroupID] == s
}

// SubmitAnswer 提交答案，猜中且抢到结束权时返回谜底
func (c *Coordinator) SubmitAnswer(groupID int64, ans string) (*maimai.Music, bool) {
	session := c.GetSession(groupID)
	if session == nil || session.IsEnded() {
		return nil, false
	}
	if !maimai.CheckAnswer(session.Music, ans) {
		return nil, false
	}
	if !session.End() {
		return nil, false
	}
	c.removeSession(session)
	return session.Music, true
}

// Reset 强行结束群当前猜歌
func (c *Coordinator) Reset(groupID int64) bool {
	session := c.GetSession(groupID)
	if session == nil {
		return false
	}
	session.End()
	c.removeSession(session)
	return true
}
