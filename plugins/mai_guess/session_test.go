package mai_guess

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/maimai"

	"github.com/wdvxdr1123/ZeroBot/message"
)

type recordSender struct {
	mutex sync.Mutex
	sent  []string
	fail  bool
}

func (s *recordSender) SendGroupMessage(groupID int64, msg message.Message) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.fail {
		return errors.New("send failed")
	}
	var sb strings.Builder
	for _, seg := range msg {
		sb.WriteString(seg.Data["text"])
	}
	s.sent = append(s.sent, sb.String())
	return nil
}

func (s *recordSender) messages() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	res := make([]string, len(s.sent))
	copy(res, s.sent)
	return res
}

type fixedPicker struct {
	music *maimai.Music
}

func (p fixedPicker) PickHotSong() (*maimai.Music, error) {
	return p.music, nil
}

func (p fixedPicker) BuildHints(m *maimai.Music) [6]string {
	return [6]string{"提示一", "提示二", "提示三", "提示四", "提示五", "提示六"}
}

func (p fixedPicker) CropCover(m *maimai.Music) (message.MessageSegment, error) {
	return message.Text("[封面]"), nil
}

func (p fixedPicker) RenderAnswer(m *maimai.Music) message.Message {
	return message.Message{message.Text(m.Title)}
}

type brokenCoverPicker struct {
	fixedPicker
}

func (p brokenCoverPicker) CropCover(m *maimai.Music) (message.MessageSegment, error) {
	return message.MessageSegment{}, errors.New("裁切失败")
}

func testMusic() *maimai.Music {
	return &maimai.Music{
		ID:    "11",
		Title: "Oshama Scramble!",
		Type:  "DX",
		DS:    []float64{4.0, 7.0, 10.0, 13.0},
	}
}

func newTestCoordinator(sender Sender) *Coordinator {
	c := NewCoordinator(sender, fixedPicker{music: testMusic()})
	c.FirstDelay = 5 * time.Millisecond
	c.HintInterval = 5 * time.Millisecond
	c.PollInterval = time.Millisecond
	return c
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("条件超时未满足")
}

func TestStartDisabled(t *testing.T) {
	c := newTestCoordinator(&recordSender{})
	c.SetEnabled(1, false)
	if err := c.Start(1); !errors.Is(err, ErrFeatureDisabled) {
		t.Errorf("期望ErrFeatureDisabled，实际 %v", err)
	}
	c.SetEnabled(1, true)
	if err := c.Start(1); err != nil {
		t.Errorf("重新开启后应可开始，实际 %v", err)
	}
}

func TestStartDuplicate(t *testing.T) {
	c := newTestCoordinator(&recordSender{})
	if err := c.Start(1); err != nil {
		t.Fatalf("首次开始失败: %v", err)
	}
	if err := c.Start(1); !errors.Is(err, ErrSessionExists) {
		t.Errorf("期望ErrSessionExists，实际 %v", err)
	}
	if err := c.StartCover(1); !errors.Is(err, ErrSessionExists) {
		t.Errorf("猜曲绘也应冲突，实际 %v", err)
	}
	// 其它群不受影响
	if err := c.Start(2); err != nil {
		t.Errorf("其它群应可开始，实际 %v", err)
	}
}

func TestHintOrderAndReveal(t *testing.T) {
	sender := &recordSender{}
	c := newTestCoordinator(sender)
	if err := c.Start(1); err != nil {
		t.Fatalf("开始失败: %v", err)
	}
	waitFor(t, func() bool {
		msgs := sender.messages()
		return len(msgs) > 0 && strings.HasPrefix(msgs[len(msgs)-1], "答案是：")
	})
	msgs := sender.messages()
	wantPrefix := []string{"我将从热门乐曲中选择一首歌", "1/7 提示一", "2/7 提示二", "3/7 提示三",
		"4/7 提示四", "5/7 提示五", "6/7 提示六", "7/7 这首歌封面的一部分是：", "答案是："}
	if len(msgs) != len(wantPrefix) {
		t.Fatalf("消息数量 = %d，期望 %d: %v", len(msgs), len(wantPrefix), msgs)
	}
	for i, prefix := range wantPrefix {
		if !strings.HasPrefix(msgs[i], prefix) {
			t.Errorf("第%d条消息 = %q，期望前缀 %q", i, msgs[i], prefix)
		}
	}
	if c.HasSession(1) {
		t.Error("公布答案后会话应已移除")
	}
}

func TestSubmitAnswer(t *testing.T) {
	c := newTestCoordinator(&recordSender{})
	if err := c.Start(1); err != nil {
		t.Fatalf("开始失败: %v", err)
	}
	if _, won := c.SubmitAnswer(1, "不对的答案"); won {
		t.Error("错误答案不应获胜")
	}
	if !c.HasSession(1) {
		t.Error("错误答案不应结束会话")
	}
	music, won := c.SubmitAnswer(1, " OSHAMA scramble! ")
	if !won {
		t.Fatal("标题答案（忽略大小写与首尾空白）应获胜")
	}
	if music.ID != "11" {
		t.Errorf("谜底ID = %v", music.ID)
	}
	if c.HasSession(1) {
		t.Error("获胜后会话应已移除")
	}
	if _, won = c.SubmitAnswer(1, "11"); won {
		t.Error("会话结束后不应再有获胜者")
	}
}

func TestSubmitAnswerByID(t *testing.T) {
	c := newTestCoordinator(&recordSender{})
	if err := c.StartCover(1); err != nil {
		t.Fatalf("开始失败: %v", err)
	}
	if _, won := c.SubmitAnswer(1, "11"); !won {
		t.Error("曲目ID应被接受为答案")
	}
}

func TestSingleWinner(t *testing.T) {
	c := newTestCoordinator(&recordSender{})
	if err := c.Start(1); err != nil {
		t.Fatalf("开始失败: %v", err)
	}
	var wins int32
	var wg sync.WaitGroup
	var mutex sync.Mutex
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, won := c.SubmitAnswer(1, "11"); won {
				mutex.Lock()
				wins++
				mutex.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Errorf("获胜者数量 = %d，期望恰好1个", wins)
	}
}

func TestReset(t *testing.T) {
	sender := &recordSender{}
	c := newTestCoordinator(sender)
	if err := c.Start(1); err != nil {
		t.Fatalf("开始失败: %v", err)
	}
	if !c.Reset(1) {
		t.Fatal("有会话时重置应成功")
	}
	if c.Reset(1) {
		t.Error("无会话时重置应失败")
	}
	before := len(sender.messages())
	time.Sleep(50 * time.Millisecond)
	for _, msg := range sender.messages()[before:] {
		if strings.HasPrefix(msg, "答案是：") || strings.Contains(msg, "/7 ") {
			t.Errorf("重置后不应再发送提示或答案: %q", msg)
		}
	}
	// 重置后可立即开新局
	if err := c.Start(1); err != nil {
		t.Errorf("重置后应可重新开始，实际 %v", err)
	}
}

func TestDisableAbortsSession(t *testing.T) {
	sender := &recordSender{}
	c := newTestCoordinator(sender)
	if err := c.Start(1); err != nil {
		t.Fatalf("开始失败: %v", err)
	}
	c.SetEnabled(1, false)
	if c.HasSession(1) {
		t.Error("关闭开关后会话应被移除")
	}
	before := len(sender.messages())
	time.Sleep(50 * time.Millisecond)
	if after := len(sender.messages()); after > before {
		t.Errorf("关闭开关后不应再发送消息: %v", sender.messages()[before:])
	}
}

func TestSendFailureDoesNotAbort(t *testing.T) {
	sender := &recordSender{fail: true}
	c := newTestCoordinator(sender)
	if err := c.Start(1); err != nil {
		t.Fatalf("发送失败不应阻止开局: %v", err)
	}
	// 发送失败时流程继续，仍可正常作答
	if _, won := c.SubmitAnswer(1, "11"); !won {
		t.Error("发送失败期间作答仍应有效")
	}
}

func TestCropFailureLeavesNoSession(t *testing.T) {
	sender := &recordSender{}
	c := NewCoordinator(sender, brokenCoverPicker{fixedPicker{music: testMusic()}})
	c.FirstDelay = 5 * time.Millisecond
	c.HintInterval = 5 * time.Millisecond
	c.PollInterval = time.Millisecond
	if err := c.StartCover(1); err == nil {
		t.Fatal("裁切失败时开局应报错")
	}
	if c.HasSession(1) {
		t.Error("失败的开局不应留下会话")
	}
	if err := c.Start(1); err == nil {
		t.Error("猜歌同样需要揭晓封面，裁切失败应报错")
	}
	if c.HasSession(1) {
		t.Error("失败的开局不应留下会话")
	}
	if msgs := sender.messages(); len(msgs) != 0 {
		t.Errorf("失败的开局不应发送消息: %v", msgs)
	}
	// 失败后不影响重新开局
	c.picker = fixedPicker{music: testMusic()}
	if err := c.StartCover(1); err != nil {
		t.Errorf("恢复后应可开局，实际 %v", err)
	}
}

func TestCoverTimeoutReveal(t *testing.T) {
	sender := &recordSender{}
	c := newTestCoordinator(sender)
	if err := c.StartCover(1); err != nil {
		t.Fatalf("开始失败: %v", err)
	}
	waitFor(t, func() bool {
		msgs := sender.messages()
		return len(msgs) > 0 && strings.HasPrefix(msgs[len(msgs)-1], "答案是：")
	})
	msgs := sender.messages()
	if !strings.HasPrefix(msgs[0], "以下裁切图片是哪首谱面的曲绘：") {
		t.Errorf("首条消息 = %q", msgs[0])
	}
	if !strings.Contains(msgs[len(msgs)-1], "Oshama Scramble!") {
		t.Errorf("答案消息应包含曲名: %q", msgs[len(msgs)-1])
	}
}
