package mai_score

import (
	"math"
	"testing"

	"github.com/ZhiheZier/MaimaiDXBot/maimai"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCalcScoreLine(t *testing.T) {
	notes := maimai.Notes{Tap: 500, Hold: 100, Slide: 100, Touch: 100, Break: 30}
	result, err := CalcScoreLine(notes, 100)
	if err != nil {
		t.Fatalf("CalcScoreLine出错：%v", err)
	}
	// 总分值 = 500*500 + 100*1500 + 100*1000 + 100*500 + 30*2500
	if result.TotalScore != 625000 {
		t.Errorf("TotalScore = %d，期望 625000", result.TotalScore)
	}
	if !almostEqual(result.TapGreats, 62.5) {
		t.Errorf("TapGreats = %v，期望 62.5", result.TapGreats)
	}
	if !almostEqual(result.TapGreatCost, 0.016) {
		t.Errorf("TapGreatCost = %v，期望 0.016", result.TapGreatCost)
	}
	if result.BreakCount != 30 {
		t.Errorf("BreakCount = %d，期望 30", result.BreakCount)
	}
	if !almostEqual(result.Break50Equal, 625000.0*(0.01/30)/4/100) {
		t.Errorf("Break50Equal = %v", result.Break50Equal)
	}
	if !almostEqual(result.Break50Reduce, (0.01/30)/4*100) {
		t.Errorf("Break50Reduce = %v", result.Break50Reduce)
	}
}

func TestCalcScoreLineHigherLine(t *testing.T) {
	notes := maimai.Notes{Tap: 500, Hold: 100, Slide: 100, Touch: 100, Break: 30}
	full, _ := CalcScoreLine(notes, 100)
	half, err := CalcScoreLine(notes, 100.5)
	if err != nil {
		t.Fatalf("CalcScoreLine出错：%v", err)
	}
	// 分数线越高，允许的容错越少
	if half.TapGreats >= full.TapGreats {
		t.Errorf("100.5的容错(%v)应小于100的容错(%v)", half.TapGreats, full.TapGreats)
	}
	if !almostEqual(half.TapGreats, full.TapGreats/2) {
		t.Errorf("TapGreats = %v，期望 %v", half.TapGreats, full.TapGreats/2)
	}
}

func TestCalcScoreLineInvalid(t *testing.T) {
	notes := maimai.Notes{Tap: 500, Break: 30}
	for _, line := range []float64{0, -5, 101, 150} {
		if _, err := CalcScoreLine(notes, line); err == nil {
			t.Errorf("分数线%v应返回错误", line)
		}
	}
	if _, err := CalcScoreLine(maimai.Notes{Tap: 500}, 100); err == nil {
		t.Error("BREAK数量为0时应返回错误")
	}
}
