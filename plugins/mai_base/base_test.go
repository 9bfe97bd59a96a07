package mai_base

import (
	"testing"
	"time"
)

func TestQQHash(t *testing.T) {
	day := time.Date(2023, 6, 15, 10, 0, 0, 0, time.Local)
	h1 := qqHash(123456789, day)
	h2 := qqHash(123456789, day.Add(3*time.Hour))
	if h1 != h2 {
		t.Errorf("同一天结果应一致：%d != %d", h1, h2)
	}
	nextDay := day.AddDate(0, 0, 1)
	if qqHash(123456789, day) == qqHash(123456789, nextDay) {
		t.Error("不同日期结果应不同")
	}
	if qqHash(123456789, day) == qqHash(987654321, day) {
		t.Error("不同QQ号结果应不同")
	}
	if h1 < 0 {
		t.Errorf("结果应为非负数：%d", h1)
	}
	// (15 + 31*6 + 77) * 123456789 >> 8
	if want := int64((15 + 31*6 + 77) * 123456789 >> 8); h1 != want {
		t.Errorf("qqHash = %d，期望 %d", h1, want)
	}
}
